package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/msomdec/employee-pass/internal/domain"
)

// Store is a process-local domain.SlotStore. Data is lost on exit.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(data), nil
}

func (s *Store) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[name] = slices.Clone(data)
	return nil
}

func (s *Store) Migrate(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
