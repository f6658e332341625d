package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps snapshots in process memory. Used in tests and
// local development without redis.
type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]Snapshot
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[uuid.UUID]Snapshot)}
}

func (r *MemoryRepository) Load(_ context.Context, userID uuid.UUID) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.snapshots[userID]
	if !ok {
		return Snapshot{}, nil
	}
	out := make(Snapshot, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *MemoryRepository) Save(_ context.Context, userID uuid.UUID, snapshot Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make(Snapshot, len(snapshot))
	copy(stored, snapshot)
	r.snapshots[userID] = stored
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, userID)
	return nil
}
