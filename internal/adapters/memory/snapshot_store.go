package memory

import (
	"context"
	"sync"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// SnapshotStore keeps generated pages in process memory. It is used when no
// database is configured; pages are regenerated after a restart.
type SnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snaps: make(map[string]domain.Snapshot)}
}

func (s *SnapshotStore) Get(ctx context.Context, slug string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[slug]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[snap.Slug] = snap
	return nil
}

// SaveAll stores the whole batch under one lock, so readers never observe a
// partially applied batch.
func (s *SnapshotStore) SaveAll(ctx context.Context, snaps []domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snaps {
		s.snaps[snap.Slug] = snap
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snaps, slug)
	return nil
}

// Len is the number of stored snapshots.
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snaps)
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
