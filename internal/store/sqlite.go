package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS throws (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		rating TEXT NOT NULL CHECK (rating IN ('bad', 'ok', 'good')),
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_throws_user_ts ON throws(user_id, timestamp);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordThrow appends one rating event and returns its id.
// Retries with exponential backoff on SQLITE_BUSY so a throw rating is
// not lost to a transient lock.
func (s *SQLiteStore) RecordThrow(ctx context.Context, userID int64, rating domain.Rating, ts time.Time) (int64, error) {
	if _, err := domain.ParseRating(string(rating)); err != nil {
		return 0, err
	}

	maxRetries := 3
	baseDelay := 50 * time.Millisecond

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO throws (user_id, rating, timestamp) VALUES (?, ?, ?)`,
			userID, string(rating), ts.Unix(),
		)
		if err == nil {
			id, err := res.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("throw insert id: %w", err)
			}
			return id, nil
		}
		lastErr = err

		if shared.IsSQLiteConflictError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i) // 50ms, 100ms, 200ms
			slog.Debug("RecordThrow hit a locked database, retrying",
				"user_id", userID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		break
	}

	return 0, fmt.Errorf("insert throw: %w", lastErr)
}

// CountByRatingSince returns rating counts for events with timestamp >= since.
func (s *SQLiteStore) CountByRatingSince(ctx context.Context, userID int64, since time.Time) (domain.Aggregate, error) {
	query := `
		SELECT rating, COUNT(*) FROM throws
		WHERE user_id = ? AND timestamp >= ?
		GROUP BY rating`

	rows, err := s.db.QueryContext(ctx, query, userID, since.Unix())
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("query rating counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rating count rows", "error", closeErr)
		}
	}()

	var agg domain.Aggregate
	for rows.Next() {
		var rating string
		var count int
		if err := rows.Scan(&rating, &count); err != nil {
			return domain.Aggregate{}, fmt.Errorf("scan rating count row: %w", err)
		}
		agg.Add(domain.Rating(rating), count)
	}
	if err := rows.Err(); err != nil {
		return domain.Aggregate{}, fmt.Errorf("iterate rating counts: %w", err)
	}

	return agg, nil
}

// DailyCountsSince returns per-day rating counts ascending by day.
// Days are UTC calendar days of the event timestamp.
func (s *SQLiteStore) DailyCountsSince(ctx context.Context, userID int64, since time.Time) ([]domain.DayCount, error) {
	query := `
		SELECT date(timestamp, 'unixepoch') AS day, rating, COUNT(*) AS count
		FROM throws
		WHERE user_id = ? AND timestamp >= ?
		GROUP BY day, rating
		ORDER BY day`

	rows, err := s.db.QueryContext(ctx, query, userID, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query daily counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close daily count rows", "error", closeErr)
		}
	}()

	var days []domain.DayCount
	for rows.Next() {
		var day, rating string
		var count int
		if err := rows.Scan(&day, &rating, &count); err != nil {
			return nil, fmt.Errorf("scan daily count row: %w", err)
		}
		if len(days) == 0 || days[len(days)-1].Day != day {
			days = append(days, domain.DayCount{Day: day})
		}
		days[len(days)-1].Counts.Add(domain.Rating(rating), count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily counts: %w", err)
	}

	return days, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
