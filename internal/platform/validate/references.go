// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// ExistenceChecker answers foreign-key lookups (implemented by query.Helper).
type ExistenceChecker interface {
	Exists(ctx context.Context, table schema.Table, field string, value any) (bool, error)
}

// UniquenessChecker answers unique-column lookups (implemented by query.Helper).
type UniquenessChecker interface {
	IsUnique(ctx context.Context, table schema.Table, field string, value any) (bool, error)
	UniqueExcept(ctx context.Context, table schema.Table, field string, value, id any) (bool, error)
}

// References checks every foreign key of table present in params.
//
// It runs after the schema check and stops at the first dangling reference,
// reporting it as "<Label> does not exist" on the offending field.
func References(ctx context.Context, checker ExistenceChecker, table schema.Table, params Params) error {
	for _, ref := range table.References {
		value, ok := params[ref.Field]
		if !ok || value == nil {
			continue
		}

		target, ok := schema.ByName(ref.Target)
		if !ok {
			return apperr.Internal(fmt.Errorf("validate: %s.%s references unknown table %q", table.Name, ref.Field, ref.Target))
		}

		exists, err := checker.Exists(ctx, target, target.PrimaryKey, value)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.FieldInvalid(ref.Field, apperr.KindReference, ref.Label+" does not exist")
		}
	}
	return nil
}

// Unique checks every unique column of table present in params.
//
// exceptID is the primary key of the row being updated, or nil on create.
// All taken values are reported together.
func Unique(ctx context.Context, checker UniquenessChecker, table schema.Table, params Params, exceptID any) error {
	var details []apperr.FieldError

	for _, field := range table.Unique {
		value, ok := params[field]
		if !ok || value == nil {
			continue
		}

		var (
			free bool
			err  error
		)
		if exceptID == nil {
			free, err = checker.IsUnique(ctx, table, field, value)
		} else {
			free, err = checker.UniqueExcept(ctx, table, field, value, exceptID)
		}
		if err != nil {
			return err
		}

		if !free {
			details = append(details, dberr.UniqueViolation(field).Details...)
		}
	}

	if len(details) > 0 {
		return apperr.ValidationError("Validation failed", details...)
	}
	return nil
}
