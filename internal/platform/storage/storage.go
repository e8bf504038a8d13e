// Package storage provides the storage-agnostic repository contract shared
// by every entity type, together with its gorm-backed implementation. The
// rest of the application depends only on the contract: equality filters,
// opaque string identifiers and field-level merge updates.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an id is malformed for the backend or
// resolves to no record. Callers distinguish it with errors.Is.
var ErrNotFound = errors.New("record not found")

// Filter is a partial field-equality match; all entries are AND-ed.
// A nil or empty filter matches every record.
type Filter map[string]any

// Fields is a partial set of named field values applied as a merge during
// updates. Any "id" entry is stripped before merging.
type Fields map[string]any

// Entity constrains the pointer type of a stored record: identifier access
// plus explicit, statically-typed merging of partial field sets.
type Entity[T any] interface {
	*T
	GetID() string
	SetID(id string)
	Merge(fields Fields)
}

// Database is the backend contract implemented once per storage engine.
type Database[T any, PT Entity[T]] interface {
	// FindByID returns the record with the given id, or ErrNotFound if the
	// id is malformed or matches nothing.
	FindByID(ctx context.Context, id string) (PT, error)

	// Find returns every record matching the filter. An empty result is a
	// valid outcome, not an error.
	Find(ctx context.Context, filter Filter) ([]PT, error)

	// Create persists a record without an id, assigns one and returns the
	// stored record.
	Create(ctx context.Context, record PT) (PT, error)

	// Update merges fields onto the existing record, leaving the id
	// untouched, and returns the result. ErrNotFound if id resolves to
	// no record.
	Update(ctx context.Context, id string, fields Fields) (PT, error)

	// Delete removes the record and reports whether one was removed.
	// A malformed id yields ErrNotFound rather than false.
	Delete(ctx context.Context, id string) (bool, error)
}

// Repository is the storage-agnostic facade handed to the usecase layer.
// It delegates every operation to a pluggable Database backend.
type Repository[T any, PT Entity[T]] struct {
	db Database[T, PT]
}

// NewRepository creates a Repository over the given backend.
func NewRepository[T any, PT Entity[T]](db Database[T, PT]) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

func (r *Repository[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	return r.db.FindByID(ctx, id)
}

func (r *Repository[T, PT]) Find(ctx context.Context, filter Filter) ([]PT, error) {
	return r.db.Find(ctx, filter)
}

func (r *Repository[T, PT]) Create(ctx context.Context, record PT) (PT, error) {
	return r.db.Create(ctx, record)
}

func (r *Repository[T, PT]) Update(ctx context.Context, id string, fields Fields) (PT, error) {
	return r.db.Update(ctx, id, fields)
}

func (r *Repository[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	return r.db.Delete(ctx, id)
}
