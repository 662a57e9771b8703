package creds

import (
	"context"
	"sync"
)

// memoryBackend is the last-resort tier: process-lifetime only.
type memoryBackend struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{items: make(map[string][]byte)}
}

func (m *memoryBackend) set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryBackend) get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryBackend) delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
