// Package store defines the record-store contract and the embedded
// SQLite-backed implementation used in standalone mode.
package store

import (
	"context"
	"errors"

	"budgetable/internal/model"
)

// ErrNotFound indicates the requested record id does not exist.
var ErrNotFound = errors.New("store: record not found")

// Store is one remote (or embedded) collection of budgetable rows.
//
// Ensure prepares the backing session and is safe to call before every
// operation; it is a no-op when a valid session already exists. All other
// methods assume Ensure semantics internally as well, so callers may rely
// on either.
type Store interface {
	Ensure(ctx context.Context) error
	List(ctx context.Context) ([]model.Row, error)
	Get(ctx context.Context, id string) (model.Row, error)
	Create(ctx context.Context, row model.Row) (model.Row, error)
	Update(ctx context.Context, id string, row model.Row) (model.Row, error)
	Delete(ctx context.Context, id string) error
}
