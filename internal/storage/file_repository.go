package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"listd/internal/model"
)

// FileRepository keeps the collection in a single human-readable JSON file.
// Writes go through a temp file and rename so a crash mid-write leaves the
// previous payload intact.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("storage: empty file path")
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) Load(_ context.Context) ([]model.Record, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return decodeSlot(raw), nil
}

func (r *FileRepository) Save(_ context.Context, records []model.Record) error {
	payload, err := encodeSlot(records)
	if err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create slot dir: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write slot file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }

func encodeSlot(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slot: %w", err)
	}
	return payload, nil
}

// decodeSlot parses the serialized collection. Malformed data reads as an
// empty collection, there is no schema versioning to fall back on.
func decodeSlot(raw []byte) []model.Record {
	var records []model.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return []model.Record{}
	}
	if records == nil {
		return []model.Record{}
	}
	return records
}
