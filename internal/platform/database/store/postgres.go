// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/folio/internal/platform/database/schema"
)

// Querier is the subset of pgx shared by [*pgxpool.Pool], [*pgx.Conn] and [pgx.Tx].
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// beginner is implemented by pools and connections that can open a transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements [Store] over pgx.
//
// # Safety
//
// Identifiers are taken from [schema.Table] definitions and quoted with
// [pgx.Identifier]. Every value is bound as a $n parameter.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore wraps a pgx pool, connection or transaction.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// # Reads

// Select executes a projection over one table.
func (store *PostgresStore) Select(ctx context.Context, query SelectQuery) ([]Record, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var r renderer
	where := r.predicate(query.Where)

	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT %s FROM %s WHERE %s ORDER BY %s %s",
		columnList(query.Columns()), ident(query.Table.Name), where, ident(query.SortField()), direction)

	if query.Limit > 0 {
		fmt.Fprintf(&sql, " LIMIT %s", r.bind(query.Limit))
	}
	if query.Offset > 0 {
		fmt.Fprintf(&sql, " OFFSET %s", r.bind(query.Offset))
	}

	rows, err := store.db.Query(ctx, sql.String(), r.args...)
	if err != nil {
		return nil, fmt.Errorf("store_select_failed: %w", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("store_select_scan_failed: %w", err)
	}

	records := make([]Record, len(maps))
	for i, row := range maps {
		records[i] = Record(row)
	}
	return records, nil
}

// Count returns the number of rows matching where.
func (store *PostgresStore) Count(ctx context.Context, table schema.Table, where Predicate) (int, error) {
	if err := where.Validate(table); err != nil {
		return 0, err
	}

	var r renderer
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", ident(table.Name), r.predicate(where))

	var total int64
	if err := store.db.QueryRow(ctx, sql, r.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("store_count_failed: %w", err)
	}
	return int(total), nil
}

// # Writes

// Insert stores record and returns the persisted row, including server defaults.
func (store *PostgresStore) Insert(ctx context.Context, table schema.Table, record Record) (Record, error) {
	if err := ValidateRecord(table, record); err != nil {
		return nil, err
	}

	var r renderer
	columns := sortedKeys(record)
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = r.bind(record[column])
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(table.Name), columnList(columns), strings.Join(placeholders, ", "), columnList(table.FieldNames()))

	rows, err := store.db.Query(ctx, sql, r.args...)
	if err != nil {
		return nil, fmt.Errorf("store_insert_failed: %w", translate(table.Name, err))
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("store_insert_failed: %w", translate(table.Name, err))
	}
	return Record(row), nil
}

// Update applies record to every row matching where and returns the affected count.
//
// A single UPDATE statement is issued, so the change is atomic per row.
func (store *PostgresStore) Update(ctx context.Context, table schema.Table, where Predicate, record Record) (int64, error) {
	if err := ValidateRecord(table, record); err != nil {
		return 0, err
	}
	if err := where.Validate(table); err != nil {
		return 0, err
	}

	sql, args := updateSQL(table, where, record)
	tag, err := store.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("store_update_failed: %w", translate(table.Name, err))
	}
	return tag.RowsAffected(), nil
}

// updateSQL renders an UPDATE, adding updated_date = now() when the table
// has the column and record leaves it unset.
func updateSQL(table schema.Table, where Predicate, record Record) (string, []any) {
	var r renderer
	columns := sortedKeys(record)
	assignments := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		assignments = append(assignments, ident(column)+" = "+r.bind(record[column]))
	}
	if _, set := record[schema.ColUpdatedDate]; !set && table.HasField(schema.ColUpdatedDate) {
		assignments = append(assignments, ident(schema.ColUpdatedDate)+" = now()")
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		ident(table.Name), strings.Join(assignments, ", "), r.predicate(where))
	return sql, r.args
}

// # Transactions

// InTx runs fn inside a transaction. The store passed to fn is bound to it.
func (store *PostgresStore) InTx(ctx context.Context, fn func(Store) error) error {
	db, ok := store.db.(beginner)
	if !ok {
		return fn(store)
	}
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return fn(NewPostgresStore(tx))
	})
}

// # Rendering

// renderer accumulates bound arguments while translating predicates.
type renderer struct {
	args []any
}

func (r *renderer) bind(value any) string {
	r.args = append(r.args, value)
	return "$" + strconv.Itoa(len(r.args))
}

func (r *renderer) predicate(p Predicate) string {
	switch p.Op {
	case "", OpAll:
		return "TRUE"
	case OpEq:
		if p.Value == nil {
			return ident(p.Field) + " IS NULL"
		}
		return ident(p.Field) + " = " + r.bind(p.Value)
	case OpNe:
		if p.Value == nil {
			return ident(p.Field) + " IS NOT NULL"
		}
		return ident(p.Field) + " IS DISTINCT FROM " + r.bind(p.Value)
	case OpLt:
		return ident(p.Field) + " < " + r.bind(p.Value)
	case OpGt:
		return ident(p.Field) + " > " + r.bind(p.Value)
	case OpLike:
		return ident(p.Field) + " ILIKE " + r.bind(p.Value)
	case OpIsNull:
		return ident(p.Field) + " IS NULL"
	case OpIn:
		if len(p.Values) == 0 {
			return "FALSE"
		}
		placeholders := make([]string, len(p.Values))
		for i, value := range p.Values {
			placeholders[i] = r.bind(value)
		}
		return ident(p.Field) + " IN (" + strings.Join(placeholders, ", ") + ")"
	case OpAnd, OpOr:
		if len(p.Children) == 0 {
			if p.Op == OpAnd {
				return "TRUE"
			}
			return "FALSE"
		}
		parts := make([]string, len(p.Children))
		for i, child := range p.Children {
			parts[i] = r.predicate(child)
		}
		return "(" + strings.Join(parts, " "+strings.ToUpper(string(p.Op))+" ") + ")"
	default:
		return "FALSE"
	}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = ident(column)
	}
	return strings.Join(quoted, ", ")
}

func sortedKeys(record Record) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
