package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/aevon-lab/primstats/internal/core/summary"
)

// MemoryStore is an in-memory SnapshotStore.
// Useful for testing and development.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]summary.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]summary.Snapshot),
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, snap summary.Snapshot) error {
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[id] = snap
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (summary.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return summary.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return ErrNotFound
	}
	delete(s.snapshots, id)
	return nil
}
