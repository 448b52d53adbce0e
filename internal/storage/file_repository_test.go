package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"listd/internal/model"
)

func testRecords() []model.Record {
	created := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	return []model.Record{
		{ID: "rec-1", Label: "Buy milk", CreatedAt: created},
		{ID: "rec-2", Label: "Morning run", Done: true, Category: "fitness", Minutes: 45, CreatedAt: created.Add(time.Minute)},
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listd.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	ctx := context.Background()

	want := testRecords()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileRepositoryMissingFileLoadsEmpty(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}

func TestFileRepositoryMalformedPayloadLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("malformed data must read as no data, got error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}

func TestFileRepositorySaveOverwritesWholeSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listd.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	ctx := context.Background()

	if err := repo.Save(ctx, testRecords()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	want := testRecords()[:1]
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slot must hold only the latest collection (-want +got):\n%s", diff)
	}
}

func TestFileRepositorySaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "listd.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("slot file not created: %v", err)
	}
}
