package cache

import (
	"context"
	"sync"
)

// MemoryStash is an in-process Stash for tests and single-node development.
type MemoryStash struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStash() *MemoryStash {
	return &MemoryStash{data: make(map[string][]byte)}
}

func (m *MemoryStash) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStash) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryStash) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
