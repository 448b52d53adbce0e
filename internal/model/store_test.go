package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(records []Record) *Store {
	s := NewStore(records)
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("rec-%d", seq)
	}
	s.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestCreateTrimsAndRejectsEmpty(t *testing.T) {
	s := newTestStore(nil)

	rec, err := s.Create("  Buy milk  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Label != "Buy milk" {
		t.Fatalf("expected trimmed label, got %q", rec.Label)
	}
	if rec.Done {
		t.Fatal("new record must start incomplete")
	}

	if _, err := s.Create("   "); err != ErrEmptyLabel {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
	if got := s.Counts().Total; got != 1 {
		t.Fatalf("rejected create must not mutate, total = %d", got)
	}
}

func TestCreateRecordValidatesFields(t *testing.T) {
	s := newTestStore(nil)
	if _, err := s.CreateRecord(Record{Label: "run", Minutes: -5}); err == nil {
		t.Fatal("expected error for negative minutes")
	}
	rec, err := s.CreateRecord(Record{Label: "run", Category: "fitness", Minutes: 45})
	if err != nil {
		t.Fatalf("create record: %v", err)
	}
	if rec.Category != "fitness" || rec.Minutes != 45 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatalf("store must allocate id and timestamp: %+v", rec)
	}
}

func TestIDsUniqueAndNeverReused(t *testing.T) {
	s := newTestStore(nil)
	first, _ := s.Create("one")
	second, _ := s.Create("two")
	if first.ID == second.ID {
		t.Fatalf("duplicate id %q", first.ID)
	}

	if !s.Remove(second.ID) {
		t.Fatal("remove should report deletion")
	}
	third, _ := s.Create("three")
	if third.ID == second.ID {
		t.Fatalf("id %q reused after deletion", second.ID)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	s := newTestStore(nil)
	rec, _ := s.Create("walk dog")

	same := rec.Label
	_, changed, found := s.Update(rec.ID, Patch{Label: &same})
	if !found {
		t.Fatal("record should be found")
	}
	if changed {
		t.Fatal("identical patch must report no change")
	}

	renamed := "walk the dog"
	got, changed, _ := s.Update(rec.ID, Patch{Label: &renamed})
	if !changed || got.Label != "walk the dog" {
		t.Fatalf("expected renamed record, got %+v changed=%v", got, changed)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(nil)
	s.Create("a")

	label := "x"
	_, changed, found := s.Update("missing", Patch{Label: &label})
	if found || changed {
		t.Fatalf("unknown id must be a silent no-op, found=%v changed=%v", found, changed)
	}
	if s.Remove("missing") {
		t.Fatal("removing unknown id must report false")
	}
}

func TestSetDoneIsExplicitNotAFlip(t *testing.T) {
	s := newTestStore(nil)
	rec, _ := s.Create("a")

	if !s.SetDone(rec.ID, true) {
		t.Fatal("expected change to done")
	}
	// Applying the same value again, as a stale gesture would, is a no-op
	// instead of a second inversion.
	if s.SetDone(rec.ID, true) {
		t.Fatal("same value must not report a change")
	}
	got, _ := s.Get(rec.ID)
	if !got.Done {
		t.Fatal("record should still be done")
	}
}

func TestFilterIsNonDestructiveAndCaseInsensitive(t *testing.T) {
	s := newTestStore(nil)
	s.Create("Task A")
	s.Create("Task B")

	matched := s.Filter("a")
	if len(matched) != 2 {
		// "a" matches both labels via "Task"; use a stricter query.
		t.Fatalf("expected 2 matches for %q, got %d", "a", len(matched))
	}
	matched = s.Filter("A")
	if len(matched) != 2 {
		t.Fatalf("case must not matter, got %d", len(matched))
	}
	matched = s.Filter("task b")
	if len(matched) != 1 || matched[0].Label != "Task B" {
		t.Fatalf("unexpected filter result: %+v", matched)
	}
	if s.Counts().Total != 2 {
		t.Fatal("filtering must not mutate the collection")
	}
	if diff := cmp.Diff([]string{"Task A", "Task B"}, labels(s.Filter(""))); diff != "" {
		t.Fatalf("clearing the filter must restore everything (-want +got):\n%s", diff)
	}
}

func TestCountsIdentity(t *testing.T) {
	s := newTestStore(nil)
	a, _ := s.Create("a")
	s.Create("b")
	s.Create("c")
	s.SetDone(a.ID, true)

	c := s.Counts()
	done := 0
	for _, rec := range s.Records() {
		if rec.Done {
			done++
		}
	}
	if c.Remaining != c.Total-done {
		t.Fatalf("remaining %d != total %d - done %d", c.Remaining, c.Total, done)
	}
	if !c.HasDone {
		t.Fatal("expected HasDone with one completed record")
	}
}

func TestRemoveDoneBatch(t *testing.T) {
	s := newTestStore(nil)
	a, _ := s.Create("a")
	s.Create("b")
	c, _ := s.Create("c")
	s.SetDone(a.ID, true)
	s.SetDone(c.ID, true)

	if removed := s.RemoveDone(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if removed := s.RemoveDone(); removed != 0 {
		t.Fatalf("second pass must remove nothing, got %d", removed)
	}
	if diff := cmp.Diff([]string{"b"}, labels(s.Records())); diff != "" {
		t.Fatalf("unexpected survivors (-want +got):\n%s", diff)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := newTestStore(nil)
	s.Create("a")
	out := s.Records()
	out[0].Label = "tampered"
	if got, _ := s.Get(out[0].ID); got.Label != "a" {
		t.Fatalf("external mutation leaked into the store: %q", got.Label)
	}
}

func labels(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Label)
	}
	return out
}
