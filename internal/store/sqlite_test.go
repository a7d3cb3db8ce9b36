package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "darts.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Failed to close test store: %v", err)
		}
	})
	return repo
}

func TestRecordThrowReturnsMonotonicIDs(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first, err := repo.RecordThrow(ctx, 1, domain.RatingGood, now)
	if err != nil {
		t.Fatalf("RecordThrow failed: %v", err)
	}
	second, err := repo.RecordThrow(ctx, 1, domain.RatingBad, now)
	if err != nil {
		t.Fatalf("RecordThrow failed: %v", err)
	}
	if second <= first {
		t.Errorf("Expected monotonic ids, got %d then %d", first, second)
	}
}

func TestRecordThrowRejectsInvalidRating(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if _, err := repo.RecordThrow(ctx, 1, domain.Rating("great"), time.Now()); !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("Expected ErrInvalidRating, got %v", err)
	}

	// Nothing must have been persisted.
	agg, err := repo.CountByRatingSince(ctx, 1, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("CountByRatingSince failed: %v", err)
	}
	if agg.Total() != 0 {
		t.Errorf("Expected empty store after rejected rating, got %+v", agg)
	}
}

func TestCountByRatingSince(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, r := range []domain.Rating{domain.RatingBad, domain.RatingBad, domain.RatingOK} {
		if _, err := repo.RecordThrow(ctx, 7, r, base); err != nil {
			t.Fatalf("RecordThrow failed: %v", err)
		}
	}
	// Outside the window.
	if _, err := repo.RecordThrow(ctx, 7, domain.RatingGood, base.Add(-time.Hour)); err != nil {
		t.Fatalf("RecordThrow failed: %v", err)
	}
	// Different user.
	if _, err := repo.RecordThrow(ctx, 8, domain.RatingGood, base); err != nil {
		t.Fatalf("RecordThrow failed: %v", err)
	}

	agg, err := repo.CountByRatingSince(ctx, 7, base.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountByRatingSince failed: %v", err)
	}
	want := domain.Aggregate{Bad: 2, OK: 1, Good: 0}
	if agg != want {
		t.Errorf("Expected %+v, got %+v", want, agg)
	}
}

func TestCountByRatingSinceIsIdempotent(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := repo.RecordThrow(ctx, 3, domain.RatingOK, now); err != nil {
		t.Fatalf("RecordThrow failed: %v", err)
	}

	first, err := repo.CountByRatingSince(ctx, 3, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountByRatingSince failed: %v", err)
	}
	second, err := repo.CountByRatingSince(ctx, 3, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountByRatingSince failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical reads, got %+v then %+v", first, second)
	}
}

func TestDailyCountsSince(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 12, 21, 0, 0, 0, time.UTC)

	for _, ev := range []struct {
		rating domain.Rating
		ts     time.Time
	}{
		{domain.RatingGood, day1},
		{domain.RatingGood, day1.Add(time.Hour)},
		{domain.RatingBad, day3},
	} {
		if _, err := repo.RecordThrow(ctx, 5, ev.rating, ev.ts); err != nil {
			t.Fatalf("RecordThrow failed: %v", err)
		}
	}

	days, err := repo.DailyCountsSince(ctx, 5, day1.Add(-time.Hour))
	if err != nil {
		t.Fatalf("DailyCountsSince failed: %v", err)
	}

	// Sparse: the empty 2026-03-11 must be omitted.
	if len(days) != 2 {
		t.Fatalf("Expected 2 days, got %d: %+v", len(days), days)
	}
	if days[0].Day != "2026-03-10" || days[1].Day != "2026-03-12" {
		t.Errorf("Expected ascending days 2026-03-10, 2026-03-12, got %q, %q", days[0].Day, days[1].Day)
	}
	if days[0].Counts.Good != 2 || days[0].Counts.Total() != 2 {
		t.Errorf("Expected {good:2} on first day, got %+v", days[0].Counts)
	}
	if days[1].Counts.Bad != 1 || days[1].Counts.Total() != 1 {
		t.Errorf("Expected {bad:1} on last day, got %+v", days[1].Counts)
	}
}

func TestDailyCountsSinceEmptyStore(t *testing.T) {
	repo := newTestStore(t)

	days, err := repo.DailyCountsSince(context.Background(), 42, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("DailyCountsSince failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("Expected empty sequence, got %+v", days)
	}
}
