package stats

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
)

// fakeRepo returns canned aggregation results.
type fakeRepo struct {
	agg       domain.Aggregate
	days      []domain.DayCount
	err       error
	lastSince time.Time
}

func (f *fakeRepo) RecordThrow(context.Context, int64, domain.Rating, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CountByRatingSince(_ context.Context, _ int64, since time.Time) (domain.Aggregate, error) {
	f.lastSince = since
	return f.agg, f.err
}

func (f *fakeRepo) DailyCountsSince(_ context.Context, _ int64, since time.Time) ([]domain.DayCount, error) {
	f.lastSince = since
	return f.days, f.err
}

func (f *fakeRepo) Ping(context.Context) error { return nil }
func (f *fakeRepo) Close() error               { return nil }

func TestWeeklySummaryWindow(t *testing.T) {
	repo := &fakeRepo{agg: domain.Aggregate{Bad: 2, OK: 1}}
	engine := NewEngine(repo)
	fixed := time.Date(2026, 4, 20, 15, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	agg, err := engine.WeeklySummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("WeeklySummary failed: %v", err)
	}
	if agg != repo.agg {
		t.Errorf("Expected %+v, got %+v", repo.agg, agg)
	}
	wantSince := fixed.AddDate(0, 0, -7)
	if !repo.lastSince.Equal(wantSince) {
		t.Errorf("Expected since %v, got %v", wantSince, repo.lastSince)
	}
}

func TestWeeklySummaryPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("database is gone")
	engine := NewEngine(&fakeRepo{err: storeErr})

	if _, err := engine.WeeklySummary(context.Background(), 1); !errors.Is(err, storeErr) {
		t.Fatalf("Expected wrapped store error, got %v", err)
	}
}

func TestTrendNoData(t *testing.T) {
	engine := NewEngine(&fakeRepo{})

	if _, err := engine.Trend(context.Background(), 1); !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("Expected ErrNoData for empty window, got %v", err)
	}
}

func TestTrendDensifiesGaps(t *testing.T) {
	repo := &fakeRepo{days: []domain.DayCount{
		{Day: "2026-04-10", Counts: domain.Aggregate{Good: 3}},
		{Day: "2026-04-12", Counts: domain.Aggregate{Bad: 1, OK: 2}},
	}}
	engine := NewEngine(repo)

	series, err := engine.Trend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}

	wantDays := []string{"2026-04-10", "2026-04-11", "2026-04-12"}
	if !reflect.DeepEqual(series.Days, wantDays) {
		t.Fatalf("Expected days %v, got %v", wantDays, series.Days)
	}
	if !reflect.DeepEqual(series.Good, []int{3, 0, 0}) {
		t.Errorf("Expected good series [3 0 0], got %v", series.Good)
	}
	if !reflect.DeepEqual(series.Bad, []int{0, 0, 1}) {
		t.Errorf("Expected bad series [0 0 1], got %v", series.Bad)
	}
	if !reflect.DeepEqual(series.OK, []int{0, 0, 2}) {
		t.Errorf("Expected ok series [0 0 2], got %v", series.OK)
	}
}

func TestTrendSingleDay(t *testing.T) {
	repo := &fakeRepo{days: []domain.DayCount{
		{Day: "2026-04-10", Counts: domain.Aggregate{OK: 1}},
	}}
	engine := NewEngine(repo)

	series, err := engine.Trend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if len(series.Days) != 1 || series.Days[0] != "2026-04-10" {
		t.Errorf("Expected single day axis, got %v", series.Days)
	}
	if series.OK[0] != 1 || series.Bad[0] != 0 || series.Good[0] != 0 {
		t.Errorf("Expected {ok:1} on the only day, got bad=%d ok=%d good=%d",
			series.Bad[0], series.OK[0], series.Good[0])
	}
}

func TestTrendPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("read failed")
	engine := NewEngine(&fakeRepo{err: storeErr})

	if _, err := engine.Trend(context.Background(), 1); !errors.Is(err, storeErr) {
		t.Fatalf("Expected wrapped store error, got %v", err)
	}
}
