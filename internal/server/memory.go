package server

import (
	"context"
	"sync"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// MemoryRepository keeps the singleton document in memory. Used in tests and
// when running without a database.
type MemoryRepository struct {
	mu     sync.Mutex
	ledger model.Ledger
	exists bool
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Get implements Repository.
func (r *MemoryRepository) Get(_ context.Context) (model.Ledger, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.exists {
		return model.Ledger{}, false, nil
	}
	return r.ledger.Clone(), true, nil
}

// Replace implements Repository.
func (r *MemoryRepository) Replace(_ context.Context, l model.Ledger) (model.Ledger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger = l.Clone()
	r.exists = true
	return r.ledger.Clone(), nil
}

// Ping implements Repository.
func (r *MemoryRepository) Ping(_ context.Context) error {
	return nil
}
