package storage

import (
	"context"
	"errors"

	"github.com/aevon-lab/primstats/internal/core/summary"
)

// Common errors returned by snapshot stores.
var (
	ErrNotFound  = errors.New("accumulator not found")
	ErrInvalidID = errors.New("invalid accumulator id")
)

// SnapshotStore persists accumulator snapshots by id.
type SnapshotStore interface {
	// Save creates or replaces the snapshot stored under id.
	Save(ctx context.Context, id string, snap summary.Snapshot) error

	// Get returns the snapshot stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) (summary.Snapshot, error)

	// List returns every stored id in ascending order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the snapshot stored under id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// UpdateFunc maps the stored snapshot to its replacement. An error aborts the
// update and leaves the stored snapshot unchanged.
type UpdateFunc func(snap summary.Snapshot) (summary.Snapshot, error)

// Updater is implemented by stores that can hold a lock on one snapshot
// across a read-modify-write, so writers in other processes cannot
// interleave with it. Stores without it rely on the caller's own locking.
type Updater interface {
	// Update returns ErrNotFound when no snapshot is stored under id.
	Update(ctx context.Context, id string, fn UpdateFunc) error
}
