package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory authoritative collection of records. Order is
// insertion order; there is no reordering operation. The store never touches
// storage or the terminal, callers decide when to persist and re-render.
type Store struct {
	records []Record
	now     func() time.Time
	newID   func() string
}

func NewStore(records []Record) *Store {
	return &Store{
		records: append([]Record(nil), records...),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Patch carries partial field changes for Update. Nil fields are left alone.
type Patch struct {
	Label    *string
	Category *string
	Minutes  *int
}

// Counts is derived state, recomputed on every call and never cached.
type Counts struct {
	Total     int
	Remaining int
	HasDone   bool
}

func (s *Store) Create(label string) (Record, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Record{}, ErrEmptyLabel
	}
	rec := Record{
		ID:        s.newID(),
		Label:     trimmed,
		CreatedAt: s.now(),
	}
	s.records = append(s.records, rec)
	return rec, nil
}

// CreateRecord appends a fully-formed record (quick-add with category and
// minutes already parsed). The id and creation time are always allocated
// here, whatever the caller filled in.
func (s *Store) CreateRecord(in Record) (Record, error) {
	in.ID = s.newID()
	in.Label = strings.TrimSpace(in.Label)
	in.CreatedAt = s.now()
	if err := in.Validate(); err != nil {
		return Record{}, err
	}
	s.records = append(s.records, in)
	return in, nil
}

// Update applies the patch to the record with the given id. The changed
// return reports whether anything actually differs; callers must skip
// persistence and re-render when it is false. An unknown id is reported via
// found=false and is never an error.
func (s *Store) Update(id string, patch Patch) (rec Record, changed bool, found bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, false, false
	}
	current := s.records[idx]
	next := current
	if patch.Label != nil {
		if trimmed := strings.TrimSpace(*patch.Label); trimmed != "" {
			next.Label = trimmed
		}
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Minutes != nil && *patch.Minutes >= 0 {
		next.Minutes = *patch.Minutes
	}
	if next == current {
		return current, false, true
	}
	s.records[idx] = next
	return next, true, true
}

func (s *Store) Remove(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	return true
}

// SetDone sets the completion flag to an explicit value rather than flipping
// it, so a stale gesture cannot invert the flag twice. Returns whether the
// flag actually changed.
func (s *Store) SetDone(id string, done bool) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	if s.records[idx].Done == done {
		return false
	}
	s.records[idx].Done = done
	return true
}

// RemoveDone deletes every completed record in one batch and returns how
// many were removed.
func (s *Store) RemoveDone() int {
	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if rec.Done {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed
}

// Filter returns a read-only projection of the records matching the query.
// The underlying collection is never mutated by filtering.
func (s *Store) Filter(query string) []Record {
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.MatchesFilter(query) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) Get(id string) (Record, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

// Records returns a copy of the full collection in insertion order.
func (s *Store) Records() []Record {
	return append([]Record(nil), s.records...)
}

func (s *Store) Counts() Counts {
	c := Counts{Total: len(s.records)}
	for _, rec := range s.records {
		if rec.Done {
			c.HasDone = true
		} else {
			c.Remaining++
		}
	}
	return c
}

func (s *Store) indexOf(id string) int {
	for i, rec := range s.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
