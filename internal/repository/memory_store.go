package repository

import (
	"context"
	"sync"
)

// MemoryCollection keeps records in process memory. Used by the
// "memory" store driver and by tests.
type MemoryCollection[T any] struct {
	mu   sync.RWMutex
	name string
	recs []T
}

func NewMemoryCollection[T any](name string) *MemoryCollection[T] {
	return &MemoryCollection[T]{name: name}
}

func (m *MemoryCollection[T]) Name() string { return m.name }

func (m *MemoryCollection[T]) Insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.recs = append(m.recs, *rec)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCollection[T]) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	n := int64(len(m.recs))
	m.recs = nil
	m.mu.Unlock()
	return n, nil
}

func (m *MemoryCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.recs))
	copy(out, m.recs)
	return out, nil
}
