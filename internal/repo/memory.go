package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

// memoryKV keeps values in a map. State lives only as long as the process.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty in-process KV.
func NewMemoryKV() KV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "repo.memoryKV.Get: %q", key)
	}
	return slices.Clone(v), nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.memoryKV.Put")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
