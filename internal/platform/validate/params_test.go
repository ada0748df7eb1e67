// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/validate"
)

func TestParams_MergeFirstWriterWins(t *testing.T) {
	path := validate.Params{"id": int64(7)}
	body := validate.Params{"id": int64(99), "title": "Hello"}

	merged := path.Merge(body)

	assert.Equal(t, int64(7), merged["id"])
	assert.Equal(t, "Hello", merged["title"])
	assert.Equal(t, validate.Params{"id": int64(7)}, path, "receiver must not be mutated")
}

func TestParams_Accessors(t *testing.T) {
	params := validate.Params{
		"page":   "3",
		"id":     float64(12),
		"title":  "x",
		"status": "0",
	}

	assert.Equal(t, 3, params.Int("page"))
	assert.Equal(t, int64(12), params.Int64("id"))
	assert.Equal(t, "x", params.String("title"))
	assert.False(t, params.Bool("status"))
	assert.True(t, params.Has("title"))
	assert.False(t, params.Has("missing"))
}

func TestParams_RecordDropsNonWritable(t *testing.T) {
	params := validate.Params{
		"id":           int64(1),
		"name":         "Folio",
		"is_deleted":   int64(1),
		"created_date": "2026-01-01",
		"page":         2,
	}

	record := params.Record(schema.Projects.Table)

	assert.Equal(t, "Folio", record["name"])
	assert.NotContains(t, record, "id")
	assert.NotContains(t, record, "is_deleted")
	assert.NotContains(t, record, "created_date")
	assert.NotContains(t, record, "page")
}

func TestPathID(t *testing.T) {
	params, err := validate.PathID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), params.Int64(validate.KeyID))

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := validate.PathID(raw)
		assertFieldError(t, err, "id")
	}
}

func TestPatch_ChainsAfterPathID(t *testing.T) {
	type body struct {
		ID   *int64  `json:"id"`
		Name *string `json:"name" validate:"omitempty,min=2"`
	}
	id, name := int64(99), "Renamed"

	path, err := validate.PathID("7")
	require.NoError(t, err)

	params, err := validate.Patch(path, body{ID: &id, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(7), params.Int64(validate.KeyID))
	assert.Equal(t, "Renamed", params.String("name"))

	short := "x"
	_, err = validate.Patch(path, body{Name: &short})
	assertFieldError(t, err, "name")
}

func TestDeriveSlug(t *testing.T) {
	params := validate.Params{"title": "Hello, Wörld!"}
	require.NoError(t, validate.DeriveSlug(params, "slug", "title"))
	assert.Equal(t, "hello-world", params["slug"])

	explicit := validate.Params{"title": "Hello", "slug": "custom"}
	require.NoError(t, validate.DeriveSlug(explicit, "slug", "title"))
	assert.Equal(t, "custom", explicit["slug"])

	// Partial updates without the source leave the slug alone.
	partial := validate.Params{"content": "x"}
	require.NoError(t, validate.DeriveSlug(partial, "slug", "title"))
	assert.NotContains(t, partial, "slug")

	err := validate.DeriveSlug(validate.Params{"title": "!!!"}, "slug", "title")
	assertFieldError(t, err, "slug")
}
