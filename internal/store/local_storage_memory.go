package store

import (
	"context"
	"sync"
)

type memoryLocalStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryLocalStorage returns a [LocalStorage] that lives only as long as
// the process. Used by tests and by the client when no file store is wanted.
func NewMemoryLocalStorage() LocalStorage {
	return &memoryLocalStorage{values: make(map[string]string)}
}

func (m *memoryLocalStorage) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryLocalStorage) Set(ctx context.Context, key, value string) error {
	return m.SetMany(ctx, map[string]string{key: value})
}

func (m *memoryLocalStorage) SetMany(_ context.Context, values map[string]string) error {
	for k := range values {
		if k == "" {
			return ErrEmptyKey
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *memoryLocalStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
