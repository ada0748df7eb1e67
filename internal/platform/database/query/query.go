// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query implements the generic data-access helpers shared by every
resource: counting, pagination, uniqueness and existence checks.

# Statelessness

A [Helper] holds only the [store.Store] handle and the uniqueness policy.
Every call receives the table and predicate explicitly.

# Safety

Sort and projection columns coming from requests are checked against the
table definition before any query is built.
*/
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/pkg/pagination"
)

// Helper runs the generic operations against a [store.Store].
type Helper struct {
	store          store.Store
	excludeDeleted bool
}

// NewHelper builds a Helper. uniquePolicy is one of the config.Unique* values;
// anything other than include_deleted excludes soft-deleted rows.
func NewHelper(db store.Store, uniquePolicy string) *Helper {
	return &Helper{
		store:          db,
		excludeDeleted: uniquePolicy != config.UniqueIncludeDeleted,
	}
}

// Store exposes the underlying store for repositories built on the helper.
func (helper *Helper) Store() store.Store { return helper.store }

// With returns a helper bound to db (typically a transaction) that keeps
// the uniqueness policy of helper.
func (helper *Helper) With(db store.Store) *Helper {
	return &Helper{store: db, excludeDeleted: helper.excludeDeleted}
}

// # Visibility

// Live is the default list filter: status = 1 AND is_deleted = 0.
func Live() store.Predicate {
	return Visibility(true, false)
}

// Visibility filters on the status and is_deleted flags.
func Visibility(active, deleted bool) store.Predicate {
	status, isDeleted := 0, 0
	if active {
		status = 1
	}
	if deleted {
		isDeleted = 1
	}
	return store.And(
		store.Eq(schema.ColStatus, status),
		store.Eq(schema.ColIsDeleted, isDeleted),
	)
}

// # Counting

// Count returns the number of rows of table satisfying where.
func (helper *Helper) Count(ctx context.Context, table schema.Table, where store.Predicate) (int, error) {
	total, err := helper.store.Count(ctx, table, where)
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("query_count_failed: %w", err), table.Name)
	}
	return total, nil
}

// # Pagination

// Page describes one window of a listing.
type Page struct {
	Fields []string
	Where  store.Predicate
	Page   int
	Limit  int
	Sort   string
	Desc   bool
}

// Paginate returns one page of rows ordered by Sort (primary key by default).
//
// The boolean is false whenever err is non-nil. An empty page is a success.
func (helper *Helper) Paginate(ctx context.Context, table schema.Table, page Page) ([]store.Record, bool, error) {
	params := pagination.Params{Page: page.Page, Limit: page.Limit, Sort: page.Sort}.Normalize(table.PrimaryKey)

	if err := checkWindow(table, params, page.Fields); err != nil {
		return nil, false, err
	}

	rows, err := helper.store.Select(ctx, store.SelectQuery{
		Table:  table,
		Fields: page.Fields,
		Where:  page.Where,
		Sort:   params.Sort,
		Desc:   page.Desc,
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, false, dberr.Wrap(fmt.Errorf("query_paginate_failed: %w", err), table.Name)
	}

	return rows, true, nil
}

// List returns one page together with the total number of matching rows.
func (helper *Helper) List(ctx context.Context, table schema.Table, page Page) ([]store.Record, int, error) {
	rows, _, err := helper.Paginate(ctx, table, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := helper.Count(ctx, table, page.Where)
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// First returns the first row matching where, or a NotFound error naming resource.
func (helper *Helper) First(ctx context.Context, table schema.Table, fields []string, where store.Predicate, resource string) (store.Record, error) {
	rows, err := helper.store.Select(ctx, store.SelectQuery{
		Table:  table,
		Fields: fields,
		Where:  where,
		Limit:  1,
	})
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("query_first_failed: %w", err), resource)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(resource)
	}
	return rows[0], nil
}

// checkWindow validates paging bounds and every requested column.
func checkWindow(table schema.Table, params pagination.Params, fields []string) error {
	var details []apperr.FieldError

	if params.Page < 1 || params.Page > pagination.MaxPage {
		details = append(details, apperr.FieldError{
			Field: "page", Kind: apperr.KindRange,
			Message: fmt.Sprintf("Page must be between 1 and %d", pagination.MaxPage),
		})
	}
	if params.Limit < 1 || params.Limit > pagination.MaxLimit {
		details = append(details, apperr.FieldError{
			Field: "limit", Kind: apperr.KindRange,
			Message: fmt.Sprintf("Limit must be between 1 and %d", pagination.MaxLimit),
		})
	}
	if !table.HasField(params.Sort) {
		details = append(details, apperr.FieldError{
			Field: "sort", Kind: apperr.KindEnum,
			Message: "Sort must be one of: " + strings.Join(table.FieldNames(), ", "),
		})
	}
	for _, field := range fields {
		if !table.HasField(field) {
			details = append(details, apperr.FieldError{
				Field: "fields", Kind: apperr.KindEnum, Message: fmt.Sprintf("Unknown field %q", field),
			})
			break
		}
	}

	if len(details) > 0 {
		return apperr.ValidationError("Validation failed", details...)
	}
	return nil
}

// # Uniqueness & Existence

// IsUnique reports whether no row of table has field == value.
//
// Soft-deleted rows are ignored unless the helper runs with the
// include_deleted policy.
func (helper *Helper) IsUnique(ctx context.Context, table schema.Table, field string, value any) (bool, error) {
	return helper.unique(ctx, table, store.Eq(field, value))
}

// UniqueExcept is [Helper.IsUnique] ignoring the row whose primary key is id,
// used when a record keeps its own value on update.
func (helper *Helper) UniqueExcept(ctx context.Context, table schema.Table, field string, value, id any) (bool, error) {
	return helper.unique(ctx, table, store.And(
		store.Eq(field, value),
		store.Ne(table.PrimaryKey, id),
	))
}

func (helper *Helper) unique(ctx context.Context, table schema.Table, where store.Predicate) (bool, error) {
	if helper.excludeDeleted {
		where = store.And(where, store.Eq(schema.ColIsDeleted, 0))
	}

	total, err := helper.Count(ctx, table, where)
	if err != nil {
		return false, err
	}
	return total == 0, nil
}

// Exists reports whether a non-deleted row of table has field == value.
//
// It is the foreign-key check: the negation of uniqueness over live rows,
// independent of the configured uniqueness policy.
func (helper *Helper) Exists(ctx context.Context, table schema.Table, field string, value any) (bool, error) {
	total, err := helper.Count(ctx, table, store.And(
		store.Eq(field, value),
		store.Eq(schema.ColIsDeleted, 0),
	))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
