// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storetest provides an in-process [store.Store] for tests.

[MemoryStore] mirrors the PostgreSQL semantics the API relies on: integer
keys from a sequence, column defaults, server-side timestamps and partial
unique indexes over non-deleted rows.
*/
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
)

// MemoryStore is an in-process [store.Store]. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
	now    func() time.Time
}

type memoryTable struct {
	rows []store.Record
	seq  int64
}

// Option customises a [MemoryStore].
type Option func(*MemoryStore)

// WithClock replaces the clock used for created_date and updated_date.
func WithClock(now func() time.Time) Option {
	return func(db *MemoryStore) { db.now = now }
}

// New creates an empty store.
func New(opts ...Option) *MemoryStore {
	db := &MemoryStore{
		tables: make(map[string]*memoryTable),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *MemoryStore) table(name string) *memoryTable {
	table, ok := db.tables[name]
	if !ok {
		table = &memoryTable{}
		db.tables[name] = table
	}
	return table
}

// rowsOf reads a table without creating it, so it is safe under the read lock.
func (db *MemoryStore) rowsOf(name string) []store.Record {
	if table, ok := db.tables[name]; ok {
		return table.rows
	}
	return nil
}

// # Reads

// Select filters, orders, pages and projects rows.
func (db *MemoryStore) Select(ctx context.Context, query store.SelectQuery) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	var matched []store.Record
	for _, row := range db.rowsOf(query.Table.Name) {
		if Match(query.Where, row) {
			matched = append(matched, row)
		}
	}

	sortField := query.SortField()
	sort.SliceStable(matched, func(i, j int) bool {
		order := compareValues(matched[i][sortField], matched[j][sortField])
		if query.Desc {
			return order > 0
		}
		return order < 0
	})

	if query.Offset >= len(matched) {
		return []store.Record{}, nil
	}
	matched = matched[query.Offset:]
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}

	columns := query.Columns()
	result := make([]store.Record, len(matched))
	for i, row := range matched {
		projected := make(store.Record, len(columns))
		for _, column := range columns {
			projected[column] = row[column]
		}
		result[i] = projected
	}
	return result, nil
}

// Count returns the number of rows matching where.
func (db *MemoryStore) Count(ctx context.Context, table schema.Table, where store.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := where.Validate(table); err != nil {
		return 0, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	total := 0
	for _, row := range db.rowsOf(table.Name) {
		if Match(where, row) {
			total++
		}
	}
	return total, nil
}

// # Writes

// Insert applies defaults, assigns the key and enforces unique columns.
func (db *MemoryStore) Insert(ctx context.Context, table schema.Table, record store.Record) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateRecord(table, record); err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows := db.table(table.Name)
	row := make(store.Record, len(table.Fields))
	now := db.now().UTC()

	for _, field := range table.Fields {
		value, ok := record[field.Name]
		switch {
		case ok:
			row[field.Name] = normalize(value)
		case field.Name == table.PrimaryKey && field.Type == schema.TypeInt:
			rows.seq++
			row[field.Name] = rows.seq
		case field.Name == schema.ColCreatedDate || field.Name == schema.ColUpdatedDate:
			row[field.Name] = now
		default:
			row[field.Name] = field.Default
		}
	}

	if field, taken := violates(table, rows, row, -1); taken {
		return nil, &store.ConflictError{Table: table.Name, Field: field}
	}

	rows.rows = append(rows.rows, row)
	return row.Clone(), nil
}

// Update mutates every matching row in place and stamps updated_date,
// like [store.PostgresStore.Update].
func (db *MemoryStore) Update(ctx context.Context, table schema.Table, where store.Predicate, record store.Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := store.ValidateRecord(table, record); err != nil {
		return 0, err
	}
	if err := where.Validate(table); err != nil {
		return 0, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows := db.table(table.Name)
	now := db.now().UTC()

	var affected []int
	for i, row := range rows.rows {
		if Match(where, row) {
			affected = append(affected, i)
		}
	}

	// Check every candidate first so a conflict leaves the table untouched.
	updated := make([]store.Record, len(affected))
	for n, i := range affected {
		next := rows.rows[i].Clone()
		if table.HasField(schema.ColUpdatedDate) {
			next[schema.ColUpdatedDate] = now
		}
		for key, value := range record {
			next[key] = normalize(value)
		}
		if field, taken := violates(table, rows, next, i); taken {
			return 0, &store.ConflictError{Table: table.Name, Field: field}
		}
		updated[n] = next
	}

	for n, i := range affected {
		rows.rows[i] = updated[n]
	}
	return int64(len(affected)), nil
}

// InTx runs fn against the store itself.
func (db *MemoryStore) InTx(_ context.Context, fn func(store.Store) error) error {
	return fn(db)
}

// violates emulates partial unique indexes (WHERE is_deleted = 0).
func violates(table schema.Table, rows *memoryTable, candidate store.Record, self int) (string, bool) {
	if candidate.Int64(schema.ColIsDeleted) != 0 {
		return "", false
	}
	for _, field := range table.Unique {
		if candidate.IsNull(field) {
			continue
		}
		for i, row := range rows.rows {
			if i == self || row.Int64(schema.ColIsDeleted) != 0 {
				continue
			}
			if compareValues(row[field], candidate[field]) == 0 {
				return field, true
			}
		}
	}
	return "", false
}
