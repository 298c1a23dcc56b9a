package offsetstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Storage.Read when the key holds no value.
var ErrNotFound = errors.New("offsetstore: key not found")

// Storage persists opaque values under string keys. Remove of an absent key
// is not an error.
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// UpdateFunc receives the current value (nil when the key is absent) and
// returns the value to store. write=false leaves the key untouched.
type UpdateFunc func(current []byte) (next []byte, write bool, err error)

// Updater is implemented by backends that can hold their lock across a whole
// read-modify-write cycle, so writers in other processes cannot interleave.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var current []byte
	if data, ok := m.values[key]; ok {
		current = append([]byte(nil), data...)
	}
	next, write, err := fn(current)
	if err != nil || !write {
		return err
	}
	m.values[key] = append([]byte(nil), next...)
	return nil
}

func (m *MemoryStorage) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
