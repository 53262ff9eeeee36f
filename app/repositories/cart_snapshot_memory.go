package repositories

import (
	"context"
	"sync"
)

// MemoryCartSnapshotRepository keeps snapshots in process. Used for local
// runs and tests.
type MemoryCartSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	writes    int
}

func NewMemoryCartSnapshotRepository() *MemoryCartSnapshotRepository {
	return &MemoryCartSnapshotRepository{snapshots: make(map[string][]byte)}
}

func (r *MemoryCartSnapshotRepository) ReadSnapshot(ctx context.Context, cartID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.snapshots[snapshotKey(cartID)]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (r *MemoryCartSnapshotRepository) WriteSnapshot(ctx context.Context, cartID string, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	r.mu.Lock()
	r.snapshots[snapshotKey(cartID)] = stored
	r.writes++
	r.mu.Unlock()
	return nil
}

// Writes counts successful writes since creation.
func (r *MemoryCartSnapshotRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
