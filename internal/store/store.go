// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
)

// Repository defines the interface for persisting throw ratings.
// The underlying log is append-only: events are recorded once and never
// updated or deleted.
type Repository interface {
	// RecordThrow appends one rating event and returns its id.
	// The rating is validated before anything touches the database;
	// anything outside bad/ok/good fails with domain.ErrInvalidRating.
	RecordThrow(ctx context.Context, userID int64, rating domain.Rating, ts time.Time) (int64, error)

	// CountByRatingSince returns rating counts for one user over events
	// with timestamp >= since. Ratings with no events count as zero.
	CountByRatingSince(ctx context.Context, userID int64, since time.Time) (domain.Aggregate, error)

	// DailyCountsSince returns per-day rating counts for one user over
	// events with timestamp >= since, ascending by day. Days with no
	// events are omitted; callers needing a dense series fill the gaps.
	DailyCountsSince(ctx context.Context, userID int64, since time.Time) ([]domain.DayCount, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
