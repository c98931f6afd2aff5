// Package storage owns the authoritative expense record set. Two backends
// implement the same contract: an in-memory map for single-session use and a
// postgres table for durable deployments.
package storage

import (
	"context"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

// Store is the record-set contract. Engines never mutate records themselves;
// everything goes through these four operations.
type Store interface {
	Create(ctx context.Context, fields expense.Fields) (expense.Record, error)
	Update(ctx context.Context, id string, fields expense.Fields) (expense.Record, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]expense.Record, error)
}

var (
	_ Store = (*InMemStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
