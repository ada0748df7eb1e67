// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package store defines the relational boundary every repository talks to.

# Contract

  - Select: fields from a table, filtered by a [Predicate], ordered, limited.
  - Insert: one [Record], returning the stored row including generated keys.
  - Update: a partial [Record] applied to every row matching a [Predicate].
  - Count: the number of rows matching a [Predicate].

[PostgresStore] is the pgx implementation; package storetest holds an
in-memory one for unit tests.

Every Update stamps updated_date on tables that carry it, unless the
record sets it explicitly.
*/
package store

import (
	"context"
	"errors"

	"github.com/taibuivan/folio/internal/platform/database/schema"
)

var (
	// ErrUnknownField is returned when a query names a column the table does not have.
	ErrUnknownField = errors.New("store: unknown field")

	// ErrEmptyRecord is returned when an insert or update carries no columns.
	ErrEmptyRecord = errors.New("store: empty record")
)

// SelectQuery describes a read against a single table.
type SelectQuery struct {
	Table schema.Table
	// Fields to return. Empty means every column of Table.
	Fields []string
	Where  Predicate
	// Sort column, defaults to the primary key.
	Sort string
	// Desc flips the order to descending.
	Desc   bool
	Limit  int
	Offset int
}

// Columns returns the effective projection.
func (q SelectQuery) Columns() []string {
	if len(q.Fields) == 0 {
		return q.Table.FieldNames()
	}
	return q.Fields
}

// SortField returns the effective ordering column.
func (q SelectQuery) SortField() string {
	if q.Sort == "" {
		return q.Table.PrimaryKey
	}
	return q.Sort
}

// Validate checks every column the query names against its table.
func (q SelectQuery) Validate() error {
	for _, field := range append(q.Columns(), q.SortField()) {
		if !q.Table.HasField(field) {
			return &FieldError{Table: q.Table.Name, Field: field}
		}
	}
	return q.Where.Validate(q.Table)
}

// FieldError reports an unknown column, keeping the offending name.
type FieldError struct {
	Table string
	Field string
}

func (e *FieldError) Error() string {
	return ErrUnknownField.Error() + ": " + e.Table + "." + e.Field
}

func (e *FieldError) Unwrap() error { return ErrUnknownField }

// Store is the data-access boundary consumed by the query helper and repositories.
type Store interface {
	Select(ctx context.Context, query SelectQuery) ([]Record, error)
	Insert(ctx context.Context, table schema.Table, record Record) (Record, error)
	Update(ctx context.Context, table schema.Table, where Predicate, record Record) (int64, error)
	Count(ctx context.Context, table schema.Table, where Predicate) (int, error)
}

// Transactor is implemented by stores that can run work atomically.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// RunInTx runs fn inside a transaction when db is a [Transactor], and
// directly against db otherwise.
func RunInTx(ctx context.Context, db Store, fn func(Store) error) error {
	if transactor, ok := db.(Transactor); ok {
		return transactor.InTx(ctx, fn)
	}
	return fn(db)
}

// ValidateRecord checks every key of record against table.
func ValidateRecord(table schema.Table, record Record) error {
	if len(record) == 0 {
		return ErrEmptyRecord
	}
	for field := range record {
		if !table.HasField(field) {
			return &FieldError{Table: table.Name, Field: field}
		}
	}
	return nil
}
