package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

// InMemStore keeps the record set in memory. Mutations are serialized by a
// single mutex, which is enough to keep the unique-id invariant for the
// record-set sizes this service sees.
type InMemStore struct {
	mu       sync.RWMutex
	expenses map[string]expense.Record
	seq      uint64
}

func NewInMemStore() *InMemStore {
	return &InMemStore{expenses: make(map[string]expense.Record)}
}

func (s *InMemStore) Create(_ context.Context, fields expense.Fields) (expense.Record, error) {
	amount, category, date, err := parseFields(fields)
	if err != nil {
		return expense.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	rec := expense.Record{
		ID:       uuid.NewString(),
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    fields.Notes,
		Seq:      s.seq,
	}
	s.expenses[rec.ID] = rec
	return rec, nil
}

func (s *InMemStore) Update(_ context.Context, id string, fields expense.Fields) (expense.Record, error) {
	amount, category, date, err := parseFields(fields)
	if err != nil {
		return expense.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.expenses[id]
	if !ok {
		return expense.Record{}, &customerr.NotFoundError{ID: id}
	}
	rec := expense.Record{
		ID:       id,
		Amount:   amount,
		Category: category,
		Date:     date,
		Notes:    fields.Notes,
		Seq:      old.Seq,
	}
	s.expenses[id] = rec
	return rec, nil
}

func (s *InMemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return &customerr.NotFoundError{ID: id}
	}
	delete(s.expenses, id)
	return nil
}

// All returns every record. Order is unspecified here; views sort themselves.
func (s *InMemStore) All(_ context.Context) ([]expense.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]expense.Record, 0, len(s.expenses))
	for _, rec := range s.expenses {
		res = append(res, rec)
	}
	return res, nil
}
