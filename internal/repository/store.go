// Package repository defines the storage interface implemented by concrete backends.
package repository

import (
	"context"

	"github.com/qabristan-app/qabristan/internal/model"
)

// SnapshotFunc receives the full record collection whenever it changes.
type SnapshotFunc func(records []model.GraveRecord)

// RecordStore is the persistence abstraction holding the full live record
// collection. Implementations order List results by their own rule: the local
// variant prepends new records, the remote variant orders by creation time
// descending. There is no delete operation.
type RecordStore interface {
	// List returns the current full collection.
	List(ctx context.Context) ([]model.GraveRecord, error)

	// Create assigns a fresh id and createdAt, stores the record, and
	// returns it.
	Create(ctx context.Context, fields model.Fields) (model.GraveRecord, error)

	// Update replaces every editable field of the record with the given id.
	// The id and createdAt are preserved. Returns errs.ErrNotFound for an
	// unknown id.
	Update(ctx context.Context, id string, fields model.Fields) error

	// Watch registers fn and delivers the current snapshot immediately, then
	// again after every observed change, until ctx is done. The local variant
	// invokes fn synchronously after its own mutations; the remote variant
	// pushes on subscription notifications, including changes made by other
	// writers.
	Watch(ctx context.Context, fn SnapshotFunc) error

	// Close releases backing resources.
	Close() error
}
