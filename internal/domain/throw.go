// Package domain contains core domain types for the darts training bot.
package domain

import (
	"fmt"
	"time"
)

// Rating describes the quality of one set of throws.
type Rating string

// The three rating categories a user can pick after a set.
const (
	RatingBad  Rating = "bad"
	RatingOK   Rating = "ok"
	RatingGood Rating = "good"
)

// ParseRating converts raw input into a Rating.
// Anything outside the three categories fails with ErrInvalidRating.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingBad, RatingOK, RatingGood:
		return Rating(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
}

// ThrowEvent is one recorded rating. Events are append-only: created once,
// never updated or deleted.
type ThrowEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Rating    Rating    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Aggregate holds rating counts over some time window. Ratings with no
// events count as zero, they are never absent.
type Aggregate struct {
	Bad  int `json:"bad"`
	OK   int `json:"ok"`
	Good int `json:"good"`
}

// Total returns the number of throws across all ratings.
func (a Aggregate) Total() int {
	return a.Bad + a.OK + a.Good
}

// Add increments the counter for the given rating.
func (a *Aggregate) Add(r Rating, n int) {
	switch r {
	case RatingBad:
		a.Bad += n
	case RatingOK:
		a.OK += n
	case RatingGood:
		a.Good += n
	}
}

// DayKey is the calendar-day format used for trend grouping.
const DayKey = "2006-01-02"

// DayCount pairs a calendar day with its rating counts.
type DayCount struct {
	Day    string    `json:"day"`
	Counts Aggregate `json:"counts"`
}
