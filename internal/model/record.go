package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyLabel     = errors.New("model: record label is required")
	ErrInvalidMinutes = errors.New("model: record minutes must be a non-negative integer")
)

// Record is one entry in the managed list. Label and Done are the core of
// every record; Category and Minutes are optional domain data (a workout
// entry carries a duration, a plain todo leaves both zero).
type Record struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Done      bool      `json:"done"`
	Category  string    `json:"category,omitempty"`
	Minutes   int       `json:"minutes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: record id is required")
	}
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyLabel
	}
	if r.Minutes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinutes, r.Minutes)
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: record created_at is required")
	}
	return nil
}

// MatchesFilter reports whether the record survives the view filter: a
// case-insensitive substring test on the label. An empty query matches
// everything.
func (r Record) MatchesFilter(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Label), strings.ToLower(q))
}

// ParseMinutes converts duration text from a form boundary into the typed
// field. Form inputs always arrive as strings; the conversion is explicit so
// a bad value is a validation failure instead of a silent zero.
func ParseMinutes(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMinutes, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMinutes, v)
	}
	return v, nil
}
