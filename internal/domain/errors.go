package domain

import "errors"

// User-facing failure conditions. All are non-fatal: they are surfaced to
// the requester as rejection messages, never as crashes.
var (
	// ErrInvalidRating is returned for a rating outside bad/ok/good.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrAlreadyActive is returned when a user starts a session while one
	// is already running.
	ErrAlreadyActive = errors.New("training session already active")

	// ErrNoActiveSession is returned when a throw is submitted outside a
	// running session.
	ErrNoActiveSession = errors.New("no active training session")

	// ErrNoData is returned when a trend is requested over an empty window.
	ErrNoData = errors.New("no data for requested window")
)
