// Package storage persists completed optimization runs so that follow-up
// weighted selections can operate on an earlier result. Storage is an
// outer-layer concern: the optimizer itself never touches it.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/cityops/parkfee/pkg/pricing"
)

// ErrRunNotFound is returned when no run exists for an id.
var ErrRunNotFound = errors.New("run not found")

// RunStore stores and retrieves optimization results.
type RunStore interface {
	SaveRun(ctx context.Context, result *pricing.Result) (int64, error)
	GetRun(ctx context.Context, id int64) (*pricing.Result, error)
}

// MemoryStore keeps runs in process memory. Used when no database is
// configured and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	seq  int64
	runs map[int64]*pricing.Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[int64]*pricing.Result)}
}

func (m *MemoryStore) SaveRun(_ context.Context, result *pricing.Result) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.runs[m.seq] = result
	return m.seq, nil
}

func (m *MemoryStore) GetRun(_ context.Context, id int64) (*pricing.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return result, nil
}
