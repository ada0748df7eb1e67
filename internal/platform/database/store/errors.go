// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ErrConflict marks writes rejected by a unique index.
var ErrConflict = errors.New("store: unique constraint violated")

// ConflictError reports which column of which table rejected the write.
type ConflictError struct {
	Table string
	Field string
	Cause error
}

func (e *ConflictError) Error() string {
	return ErrConflict.Error() + ": " + e.Table + "." + e.Field
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Cause }

// translate converts driver errors into store errors where a mapping exists.
func translate(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &ConflictError{Table: table, Field: conflictField(pgErr), Cause: err}
	}
	return err
}

// conflictField extracts the column from a detail such as
// "Key (email)=(a@b.com) already exists.", falling back to the constraint name.
func conflictField(pgErr *pgconn.PgError) string {
	if _, rest, ok := strings.Cut(pgErr.Detail, "Key ("); ok {
		if field, _, ok := strings.Cut(rest, ")"); ok {
			return field
		}
	}
	return pgErr.ConstraintName
}
