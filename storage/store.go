// Package storage provides the record store collaborator the caching
// subsystem reads through and invalidates against: the Record model, the
// RecordStore contract, sort-spec normalization, and a bun-backed SQL
// implementation.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("storage: record not found")

// ErrDuplicate is returned when a create matches an existing record's
// amount, description, and timestamp.
var ErrDuplicate = errors.New("storage: duplicate record")

// RecordStore is the source of truth the cache layer loads from. Mutating
// operations are expected to have committed before any cache invalidation
// runs, so a concurrent reader racing the eviction cannot re-populate a
// cache with pre-write state.
type RecordStore interface {
	// LoadByID returns the record with the given ID, or ErrNotFound.
	LoadByID(ctx context.Context, id string) (*Record, error)

	// LoadPage returns one page of records ordered by sort. Page numbers
	// are zero-based.
	LoadPage(ctx context.Context, page, size int, sort Sort) (*Page, error)

	// ListAll returns every record ordered by timestamp, newest first.
	ListAll(ctx context.Context) ([]*Record, error)

	// Create persists a new record, assigning an ID when absent.
	// Returns ErrDuplicate for an amount/description/timestamp match.
	Create(ctx context.Context, rec *Record) (*Record, error)

	// Update persists changes to an existing record, or ErrNotFound.
	Update(ctx context.Context, rec *Record) (*Record, error)

	// Delete removes the record with the given ID, or ErrNotFound.
	Delete(ctx context.Context, id string) error
}
