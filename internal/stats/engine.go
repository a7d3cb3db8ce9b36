// Package stats computes rating aggregates over time windows.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/store"
)

// Aggregation windows.
const (
	weeklyWindow    = 7 * 24 * time.Hour
	trendWindowDays = 14
)

// TrendSeries is a dense per-day breakdown for chart rendering: three
// named series aligned to one ascending day axis. Days with no events
// for a given rating carry a zero.
type TrendSeries struct {
	Days []string
	Bad  []int
	OK   []int
	Good []int
}

// WindowDays returns the length of the trend window in days.
func (s *TrendSeries) WindowDays() int { return trendWindowDays }

// Engine answers statistics requests from the throw log.
type Engine struct {
	repo store.Repository
	now  func() time.Time
}

// NewEngine creates an Engine over the given repository.
func NewEngine(repo store.Repository) *Engine {
	return &Engine{repo: repo, now: time.Now}
}

// WeeklySummary returns rating counts over the last seven days.
func (e *Engine) WeeklySummary(ctx context.Context, userID int64) (domain.Aggregate, error) {
	since := e.now().Add(-weeklyWindow)
	agg, err := e.repo.CountByRatingSince(ctx, userID, since)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("weekly summary: %w", err)
	}
	return agg, nil
}

// Trend returns the per-day breakdown over the last fourteen days.
// The store's sparse result is densified: the axis runs from the first
// to the last day with events, with the gap days filled in as zeros.
// An empty window fails with domain.ErrNoData so callers render a
// "no data" message instead of an empty chart.
func (e *Engine) Trend(ctx context.Context, userID int64) (*TrendSeries, error) {
	since := e.now().AddDate(0, 0, -trendWindowDays)
	days, err := e.repo.DailyCountsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}
	if len(days) == 0 {
		return nil, domain.ErrNoData
	}
	return densify(days)
}

func densify(sparse []domain.DayCount) (*TrendSeries, error) {
	first, err := time.Parse(domain.DayKey, sparse[0].Day)
	if err != nil {
		return nil, fmt.Errorf("parse first day %q: %w", sparse[0].Day, err)
	}
	last, err := time.Parse(domain.DayKey, sparse[len(sparse)-1].Day)
	if err != nil {
		return nil, fmt.Errorf("parse last day %q: %w", sparse[len(sparse)-1].Day, err)
	}

	byDay := make(map[string]domain.Aggregate, len(sparse))
	for _, dc := range sparse {
		byDay[dc.Day] = dc.Counts
	}

	var series TrendSeries
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DayKey)
		counts := byDay[key]
		series.Days = append(series.Days, key)
		series.Bad = append(series.Bad, counts.Bad)
		series.OK = append(series.OK, counts.OK)
		series.Good = append(series.Good, counts.Good)
	}
	return &series, nil
}
