package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"listd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteRepository keeps the collection as one JSON payload in a keyed slot
// row. The row is fully overwritten on every save, matching the file
// backend's semantics while living in a proper database file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]model.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, SlotName)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("read slot row: %w", err)
	}
	return decodeSlot([]byte(payload)), nil
}

func (r *SQLiteRepository) Save(ctx context.Context, records []model.Record) error {
	payload, err := encodeSlot(records)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO slots (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		SlotName, string(payload), mustTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("write slot row: %w", err)
	}
	return nil
}

// UpdatedAt reports when the slot was last written. Useful as a diagnostic;
// a missing slot reports a zero time.
func (r *SQLiteRepository) UpdatedAt(ctx context.Context) (time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT updated_at FROM slots WHERE name = ?`, SlotName)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read slot timestamp: %w", err)
	}
	return time.Parse(sqliteTimeLayout, raw)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}
