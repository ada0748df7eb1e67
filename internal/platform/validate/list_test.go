// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// assertFieldError checks err is a validation error naming field.
func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an AppError, got %v", err)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.True(t, ae.HasField(field), "expected a detail for %q, got %+v", field, ae.Details)
}

func TestList_Defaults(t *testing.T) {
	params, err := validate.List(map[string]any{}, schema.Articles.Table)
	require.NoError(t, err)

	assert.Equal(t, 1, params[validate.KeyPage])
	assert.Equal(t, 10, params[validate.KeyLimit])
	assert.Equal(t, "id", params[validate.KeySort])
	assert.Equal(t, "", params[validate.KeySearch])
	assert.Equal(t, true, params[validate.KeyStatus])
	assert.Equal(t, false, params[validate.KeyIsDeleted])
}

func TestList_Coercion(t *testing.T) {
	params, err := validate.List(map[string]any{
		"page":       "2",
		"limit":      float64(50),
		"sort":       "title",
		"search":     "  go  ",
		"status":     "0",
		"is_deleted": "true",
	}, schema.Articles.Table)
	require.NoError(t, err)

	assert.Equal(t, 2, params[validate.KeyPage])
	assert.Equal(t, 50, params[validate.KeyLimit])
	assert.Equal(t, "title", params[validate.KeySort])
	assert.Equal(t, "go", params[validate.KeySearch])
	assert.Equal(t, false, params[validate.KeyStatus])
	assert.Equal(t, true, params[validate.KeyIsDeleted])
}

func TestList_EmptyStringsFallBackToDefaults(t *testing.T) {
	params, err := validate.List(map[string]any{"page": "", "sort": "  "}, schema.Projects.Table)
	require.NoError(t, err)
	assert.Equal(t, 1, params[validate.KeyPage])
	assert.Equal(t, "id", params[validate.KeySort])
}

func TestList_Violations(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"limit_above_max", map[string]any{"limit": 201}, "limit"},
		{"limit_zero", map[string]any{"limit": "0"}, "limit"},
		{"page_below_one", map[string]any{"page": 0}, "page"},
		{"page_not_integer", map[string]any{"page": "two"}, "page"},
		{"page_above_max", map[string]any{"page": "5000000"}, "page"},
		{"unknown_sort", map[string]any{"sort": "password; DROP TABLE"}, "sort"},
		{"search_too_long", map[string]any{"search": strings.Repeat("a", 201)}, "search"},
		{"status_not_bool", map[string]any{"status": "maybe"}, "status"},
		{"is_deleted_not_bool", map[string]any{"is_deleted": 7}, "is_deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate.List(tt.raw, schema.Articles.Table)
			assertFieldError(t, err, tt.field)
		})
	}
}

func TestList_ReportsEveryViolation(t *testing.T) {
	_, err := validate.List(map[string]any{"page": -1, "limit": 1000, "sort": "nope"}, schema.Articles.Table)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
	assert.True(t, ae.HasField("page"))
	assert.True(t, ae.HasField("limit"))
	assert.True(t, ae.HasField("sort"))
}

func TestParams_Page(t *testing.T) {
	params, err := validate.List(map[string]any{"page": "2", "limit": "5", "search": "go"}, schema.Articles.Table)
	require.NoError(t, err)

	page := params.Page("title", "excerpt")

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, "id", page.Sort)
	assert.ElementsMatch(t, []string{"status", "is_deleted", "title", "excerpt"}, page.Where.Fields())
}
