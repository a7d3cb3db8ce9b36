// Package training tracks active timed practice sessions.
package training

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/store"
)

// summaryQueryTimeout bounds the store read done from the timer callback.
const summaryQueryTimeout = 10 * time.Second

// Notifier receives session outcomes for delivery to the user.
type Notifier interface {
	// SessionFinished delivers the summary of a completed session.
	SessionFinished(userID int64, summary domain.Aggregate)

	// SummaryFailed reports that a session completed but its summary
	// could not be computed.
	SummaryFailed(userID int64, err error)
}

type session struct {
	startedAt time.Time
	timer     *time.Timer
}

// Tracker enforces at-most-one active session per user and fires a
// one-shot completion per successful start. Session state is in-memory
// only: a restart resets every user to inactive, which is the intended
// recovery path.
type Tracker struct {
	repo     store.Repository
	notifier Notifier
	duration time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
	closed   bool
}

// NewTracker creates a Tracker. duration is how long a session runs
// before the completion callback fires.
func NewTracker(repo store.Repository, notifier Notifier, duration time.Duration) *Tracker {
	return &Tracker{
		repo:     repo,
		notifier: notifier,
		duration: duration,
		now:      time.Now,
		sessions: make(map[int64]*session),
	}
}

// Start begins a session for the user and arms its completion timer.
// Fails with domain.ErrAlreadyActive while a session is running; the
// running session and its timer are left untouched.
func (t *Tracker) Start(userID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("tracker is shut down")
	}
	if _, active := t.sessions[userID]; active {
		return domain.ErrAlreadyActive
	}

	t.sessions[userID] = &session{
		startedAt: t.now(),
		timer: time.AfterFunc(t.duration, func() {
			t.finish(userID)
		}),
	}

	slog.Info("Training session started", "user_id", userID, "duration", t.duration)
	return nil
}

// RecordThrow persists one rating for the user's running session.
// Fails with domain.ErrNoActiveSession when no session is running; the
// store is not touched in that case.
func (t *Tracker) RecordThrow(ctx context.Context, userID int64, rating domain.Rating) error {
	t.mu.Lock()
	_, active := t.sessions[userID]
	t.mu.Unlock()

	if !active {
		return domain.ErrNoActiveSession
	}

	if _, err := t.repo.RecordThrow(ctx, userID, rating, t.now()); err != nil {
		return fmt.Errorf("record throw: %w", err)
	}
	return nil
}

// Active reports whether the user has a running session.
func (t *Tracker) Active(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, active := t.sessions[userID]
	return active
}

// finish is the completion callback. It flips the user back to inactive
// before any store access, so a stale timer can never race a newer
// session for the same user.
func (t *Tracker) finish(userID int64) {
	t.mu.Lock()
	sess, active := t.sessions[userID]
	if !active {
		// Timer was stopped by Close, or already consumed.
		t.mu.Unlock()
		return
	}
	delete(t.sessions, userID)
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), summaryQueryTimeout)
	defer cancel()

	// The window is anchored at the recorded start, not now-duration:
	// a late-firing timer must not drop throws made right after start.
	summary, err := t.repo.CountByRatingSince(ctx, userID, sess.startedAt)
	if err != nil {
		slog.Error("Failed to compute session summary",
			"user_id", userID,
			"started_at", sess.startedAt,
			"error", err)
		t.notifier.SummaryFailed(userID, err)
		return
	}

	slog.Info("Training session finished",
		"user_id", userID,
		"bad", summary.Bad,
		"ok", summary.OK,
		"good", summary.Good)
	t.notifier.SessionFinished(userID, summary)
}

// Close stops all pending timers. No completion fires for sessions that
// were still running.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for userID, sess := range t.sessions {
		sess.timer.Stop()
		delete(t.sessions, userID)
	}
	t.closed = true
}
