// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/slug"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Mapping:
//   - pgx.ErrNoRows              -> 404 "<resource> not found"
//   - store.ConflictError        -> 400 VALIDATION_ERROR on the unique field
//   - store.ErrUnknownField      -> 400 VALIDATION_ERROR on the unknown field
//   - context deadline exceeded  -> 503
//   - anything else              -> 500 (cause kept for logs)
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique index rejected the write (partial index over live rows)
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		return UniqueViolation(conflict.Field)
	}

	// 3. Column not part of the table definition
	var unknown *store.FieldError
	if errors.As(err, &unknown) {
		return apperr.FieldInvalid(unknown.Field, apperr.KindFormat,
			fmt.Sprintf("Unknown field %q", unknown.Field))
	}

	// 4. The request deadline elapsed while waiting on the database
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperr.AppError{
			Code:       apperr.CodeServiceUnavailable,
			Message:    "Database timeout",
			HTTPStatus: http.StatusServiceUnavailable,
			Cause:      err,
		}
	}

	// 5. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// UniqueViolation builds the validation error reported for a taken unique value.
func UniqueViolation(field string) *apperr.AppError {
	return apperr.FieldInvalid(field, apperr.KindUnique, slug.Humanize(field)+" must be unique")
}
