package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryAdapter tracks last-allocation timestamps in process memory. This is
// the default cooldown store: cooldowns reset when the process restarts,
// which the engine explicitly tolerates.
type MemoryAdapter struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{last: make(map[string]time.Time)}
}

func (m *MemoryAdapter) LastAllocation(ctx context.Context, principalID string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.last[principalID]
	return at, ok, nil
}

func (m *MemoryAdapter) Record(ctx context.Context, principalID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[principalID] = at
	return nil
}
