// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/convert"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # List Keys

const (
	KeyPage      = "page"
	KeyLimit     = "limit"
	KeySort      = "sort"
	KeySearch    = "search"
	KeyStatus    = "status"
	KeyIsDeleted = "is_deleted"
)

// maxSearchLength bounds the free-text filter.
const maxSearchLength = 200

// List validates the listing parameters of a request against table.
//
// # Defaults
//
// page=1, limit=10, sort="id", search="", status=true, is_deleted=false.
//
// # Coercion
//
// Numeric strings become ints; "true"/"false"/"1"/"0" become booleans.
// Every violation is reported, not only the first.
func List(raw map[string]any, table schema.Table) (Params, error) {
	var errs []apperr.FieldError
	fail := func(field, kind, message string) {
		errs = append(errs, apperr.FieldError{Field: field, Kind: kind, Message: message})
	}

	page := pagination.DefaultPage
	if value, ok := present(raw, KeyPage); ok {
		n, ok := convert.ToInt(value)
		switch {
		case !ok:
			fail(KeyPage, apperr.KindType, "Page must be an integer")
		case n < 1 || n > pagination.MaxPage:
			fail(KeyPage, apperr.KindRange, fmt.Sprintf("Page must be between 1 and %d", pagination.MaxPage))
		default:
			page = n
		}
	}

	limit := pagination.DefaultLimit
	if value, ok := present(raw, KeyLimit); ok {
		n, ok := convert.ToInt(value)
		switch {
		case !ok:
			fail(KeyLimit, apperr.KindType, "Limit must be an integer")
		case n < 1 || n > pagination.MaxLimit:
			fail(KeyLimit, apperr.KindRange, fmt.Sprintf("Limit must be between 1 and %d", pagination.MaxLimit))
		default:
			limit = n
		}
	}

	sort := table.PrimaryKey
	if value, ok := present(raw, KeySort); ok {
		candidate := strings.TrimSpace(convert.ToString(value))
		if table.HasField(candidate) {
			sort = candidate
		} else {
			fail(KeySort, apperr.KindEnum, "Sort must be one of: "+strings.Join(table.FieldNames(), ", "))
		}
	}

	search := ""
	if value, ok := present(raw, KeySearch); ok {
		search = strings.TrimSpace(convert.ToString(value))
		if utf8.RuneCountInString(search) > maxSearchLength {
			fail(KeySearch, apperr.KindLength, fmt.Sprintf("Search must be at most %d characters", maxSearchLength))
		}
	}

	status := true
	if value, ok := present(raw, KeyStatus); ok {
		b, ok := convert.ToBool(value)
		if ok {
			status = b
		} else {
			fail(KeyStatus, apperr.KindType, "Status must be a boolean")
		}
	}

	isDeleted := false
	if value, ok := present(raw, KeyIsDeleted); ok {
		b, ok := convert.ToBool(value)
		if ok {
			isDeleted = b
		} else {
			fail(KeyIsDeleted, apperr.KindType, "Is deleted must be a boolean")
		}
	}

	if len(errs) > 0 {
		return nil, apperr.ValidationError("Validation failed", errs...)
	}

	return Params{
		KeyPage:      page,
		KeyLimit:     limit,
		KeySort:      sort,
		KeySearch:    search,
		KeyStatus:    status,
		KeyIsDeleted: isDeleted,
	}, nil
}

// present returns raw[key] unless it is missing, nil or an empty string.
func present(raw map[string]any, key string) (any, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil, false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return value, true
}

// Page turns validated list params into a query window filtered on the
// status and is_deleted flags. A non-empty search is matched
// case-insensitively against any of searchFields.
func (p Params) Page(searchFields ...string) query.Page {
	where := query.Visibility(p.Bool(KeyStatus), p.Bool(KeyIsDeleted))

	if search := p.String(KeySearch); search != "" && len(searchFields) > 0 {
		matches := make([]store.Predicate, 0, len(searchFields))
		for _, field := range searchFields {
			matches = append(matches, store.Contains(field, search))
		}
		where = store.And(where, store.Or(matches...))
	}

	return query.Page{
		Where: where,
		Page:  p.Int(KeyPage),
		Limit: p.Int(KeyLimit),
		Sort:  p.String(KeySort),
	}
}
