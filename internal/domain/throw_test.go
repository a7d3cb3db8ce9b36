package domain

import (
	"errors"
	"testing"
)

func TestParseRating(t *testing.T) {
	for _, s := range []string{"bad", "ok", "good"} {
		r, err := ParseRating(s)
		if err != nil {
			t.Errorf("ParseRating(%q) returned error: %v", s, err)
		}
		if string(r) != s {
			t.Errorf("Expected rating %q, got %q", s, r)
		}
	}
}

func TestParseRatingRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "great", "BAD", "ok "} {
		if _, err := ParseRating(s); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("ParseRating(%q): expected ErrInvalidRating, got %v", s, err)
		}
	}
}

func TestAggregateAddAndTotal(t *testing.T) {
	var a Aggregate
	a.Add(RatingBad, 2)
	a.Add(RatingOK, 1)
	a.Add(RatingGood, 0)

	if a.Bad != 2 || a.OK != 1 || a.Good != 0 {
		t.Errorf("Expected {bad:2 ok:1 good:0}, got %+v", a)
	}
	if a.Total() != 3 {
		t.Errorf("Expected total 3, got %d", a.Total())
	}
}
