package pet

import (
	"context"
	"errors"
	"sync"
)

// ErrNoPet is returned when there is no saved pet to load.
var ErrNoPet = errors.New("pet: no saved pet")

// Persister stores one serialized pet. Load returns ErrNoPet when the
// slot is empty.
type Persister interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

// MemoryPersister keeps the snapshot in memory.
type MemoryPersister struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryPersister creates an empty in-memory slot.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Save stores a copy of data.
func (m *MemoryPersister) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Load returns a copy of the stored data.
func (m *MemoryPersister) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoPet
	}
	return append([]byte(nil), m.data...), nil
}

// Clear empties the slot.
func (m *MemoryPersister) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
