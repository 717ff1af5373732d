package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/metrics"
)

// LoadCollection reads the persisted collection from slots. A slot that was
// never written yields an empty collection and no error.
func LoadCollection(ctx context.Context, slots domain.SlotStore) ([]domain.Employee, error) {
	data, err := slots.Get(ctx, domain.EmployeeSlot)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Employee{}, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}

	var list []domain.Employee
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if list == nil {
		list = []domain.Employee{}
	}
	return list, nil
}

// SaveCollection overwrites the persisted collection with list.
func SaveCollection(ctx context.Context, slots domain.SlotStore, list []domain.Employee) error {
	if list == nil {
		list = []domain.Employee{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := slots.Put(ctx, domain.EmployeeSlot, data); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// EmployeeStore is the in-memory collection, mirrored to a slot store after
// every accepted mutation. Memory and storage never diverge: a failed write
// rolls the change back.
type EmployeeStore struct {
	mu        sync.Mutex
	slots     domain.SlotStore
	employees []domain.Employee
	now       func() time.Time
}

// StoreOption configures an EmployeeStore.
type StoreOption func(*EmployeeStore)

// WithClock replaces time.Now for id and date generation.
func WithClock(now func() time.Time) StoreOption {
	return func(s *EmployeeStore) { s.now = now }
}

// NewEmployeeStore loads the collection once. An unreadable or malformed slot
// is logged and treated as an empty collection.
func NewEmployeeStore(ctx context.Context, slots domain.SlotStore, opts ...StoreOption) *EmployeeStore {
	s := &EmployeeStore{slots: slots, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	list, err := LoadCollection(ctx, slots)
	if err != nil {
		slog.Warn("stored collection unusable, starting empty", "error", err)
		list = []domain.Employee{}
	}
	s.employees = list
	metrics.Employees.Set(float64(len(list)))
	return s
}

// List returns a copy of the collection in insertion order.
func (s *EmployeeStore) List() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.employees)
}

// Len returns the number of records.
func (s *EmployeeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.employees)
}

// Get returns a copy of the record with the given id.
func (s *EmployeeStore) Get(id string) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := s.employees[i]
	return &e, nil
}

// Create appends a new record with a generated id and today's registration date.
func (s *EmployeeStore) Create(ctx context.Context, name, employeeID, photo string) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := domain.Employee{
		ID:               s.newID(employeeID, now),
		Name:             name,
		EmployeeID:       employeeID,
		Photo:            photo,
		RegistrationDate: now.Format(domain.RegistrationDateLayout),
	}

	next := append(slices.Clone(s.employees), e)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces name and employee ID of the record matched by id. The id,
// photo and registration date are kept.
func (s *EmployeeStore) Update(ctx context.Context, id, name, employeeID string) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	next := slices.Clone(s.employees)
	next[i].Name = name
	next[i].EmployeeID = employeeID
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	e := next[i]
	return &e, nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// successful no-op that still rewrites the slot.
func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.employees), func(e domain.Employee) bool {
		return e.ID == id
	})
	return s.commit(ctx, next)
}

// commit persists next and swaps it in only when the write succeeds.
// Callers hold s.mu.
func (s *EmployeeStore) commit(ctx context.Context, next []domain.Employee) error {
	if err := SaveCollection(ctx, s.slots, next); err != nil {
		metrics.StoreWriteFailures.Inc()
		return fmt.Errorf("persist collection: %w", err)
	}
	s.employees = next
	metrics.Employees.Set(float64(len(next)))
	return nil
}

func (s *EmployeeStore) indexOf(id string) int {
	return slices.IndexFunc(s.employees, func(e domain.Employee) bool { return e.ID == id })
}

// newID builds "<employeeID>-<unix ms>", bumping the millisecond part while
// it collides with an existing record.
func (s *EmployeeStore) newID(employeeID string, now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := employeeID + "-" + strconv.FormatInt(ms, 10)
		if s.indexOf(id) < 0 {
			return id
		}
		ms++
	}
}
