// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package crud is the record-level repository shared by every resource.

# Soft Delete

Rows are never removed: delete sets status = 0 and is_deleted = 1. Lookups by
primary key ignore both flags, so a deleted record stays fetchable by id.
Listings filter on them through the predicate built by the caller.
*/
package crud

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// Repository reads and writes one table.
type Repository struct {
	helper   *query.Helper
	table    schema.Table
	resource string
	columns  []string
}

// New creates a repository. columns restricts what reads return (nil = all);
// resource names the entity in NotFound messages.
func New(helper *query.Helper, table schema.Table, resource string, columns []string) *Repository {
	return &Repository{helper: helper, table: table, resource: resource, columns: columns}
}

// Helper exposes the query helper, for validators that need it.
func (repository *Repository) Helper() *query.Helper { return repository.helper }

// Table returns the table this repository manages.
func (repository *Repository) Table() schema.Table { return repository.table }

/*
Get returns the row whose primary key is id, deleted or not.

Returns:
  - store.Record: the projected row
  - error: apperr.NotFound when no row has the id
*/
func (repository *Repository) Get(ctx context.Context, id int64) (store.Record, error) {
	return repository.helper.First(ctx, repository.table, repository.columns,
		store.Eq(repository.table.PrimaryKey, id), repository.resource)
}

// GetLive is [Repository.Get] restricted to rows that are not soft-deleted.
func (repository *Repository) GetLive(ctx context.Context, id int64) (store.Record, error) {
	return repository.helper.First(ctx, repository.table, repository.columns,
		store.And(
			store.Eq(repository.table.PrimaryKey, id),
			store.Eq(schema.ColIsDeleted, constants.NotDeleted),
		), repository.resource)
}

// List returns one page and the total number of rows matching page.Where.
func (repository *Repository) List(ctx context.Context, page query.Page) ([]store.Record, int, error) {
	if page.Fields == nil {
		page.Fields = repository.columns
	}
	return repository.helper.List(ctx, repository.table, page)
}

// Create inserts record and returns the stored row.
func (repository *Repository) Create(ctx context.Context, record store.Record) (store.Record, error) {
	row, err := repository.helper.Store().Insert(ctx, repository.table, record)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("crud_%s_insert_failed: %w", repository.table.Name, err), repository.resource)
	}
	return repository.project(row), nil
}

// Update applies record to the live row id and returns the stored row.
func (repository *Repository) Update(ctx context.Context, id int64, record store.Record) (store.Record, error) {
	if len(record) > 0 {
		affected, err := repository.helper.Store().Update(ctx, repository.table, repository.live(id), record)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("crud_%s_update_failed: %w", repository.table.Name, err), repository.resource)
		}
		if affected == 0 {
			return nil, apperr.NotFound(repository.resource)
		}
	}
	return repository.GetLive(ctx, id)
}

// SoftDelete marks the live row id as inactive and deleted.
func (repository *Repository) SoftDelete(ctx context.Context, id int64) error {
	affected, err := repository.helper.Store().Update(ctx, repository.table, repository.live(id), store.Record{
		schema.ColStatus:    constants.StatusInactive,
		schema.ColIsDeleted: constants.Deleted,
	})
	if err != nil {
		return dberr.Wrap(fmt.Errorf("crud_%s_delete_failed: %w", repository.table.Name, err), repository.resource)
	}
	if affected == 0 {
		return apperr.NotFound(repository.resource)
	}
	return nil
}

func (repository *Repository) live(id int64) store.Predicate {
	return store.And(
		store.Eq(repository.table.PrimaryKey, id),
		store.Eq(schema.ColIsDeleted, constants.NotDeleted),
	)
}

func (repository *Repository) project(row store.Record) store.Record {
	if repository.columns == nil {
		return row
	}
	return row.Pick(repository.columns...)
}
