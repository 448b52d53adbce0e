package storage

import (
	"context"

	"listd/internal/model"
)

// SlotName is the key under which the serialized collection lives in
// keyed backends (the sqlite slot table). The file backend uses its path
// as the slot.
const SlotName = "records"

// Repository is the durable slot behind the list. The whole collection is
// written on every save; the data volume is small and a full overwrite keeps
// the slot and the in-memory store equal without a diff algorithm.
//
// Load treats a missing or malformed slot as an empty collection so startup
// is never blocked by a damaged file; it returns an error only for real I/O
// failures the caller may want to surface.
type Repository interface {
	Load(ctx context.Context) ([]model.Record, error)
	Save(ctx context.Context, records []model.Record) error
	Close() error
}
