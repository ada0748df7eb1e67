// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
	"github.com/taibuivan/folio/internal/platform/validate"
)

type articleInput struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Slug       *string  `json:"slug" validate:"omitempty,slug"`
	CategoryID *int     `json:"category_id" validate:"omitempty,gte=1"`
	Tags       []string `json:"tags" validate:"omitempty,max=5,dive,min=1,max=50"`
}

func ptr[T any](v T) *T { return &v }

func TestEntity_Valid(t *testing.T) {
	params, err := validate.Entity(articleInput{
		Title:      "Hello world",
		Slug:       ptr("hello-world"),
		CategoryID: ptr(3),
		Tags:       []string{"go", "sql"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", params["title"])
	assert.Equal(t, "hello-world", params["slug"])
	assert.Equal(t, int64(3), params["category_id"])
	assert.Equal(t, `["go","sql"]`, params["tags"])
}

func TestEntity_NilPointersAreAbsent(t *testing.T) {
	params, err := validate.Entity(articleInput{Title: "Hello"})
	require.NoError(t, err)

	assert.False(t, params.Has("slug"))
	assert.False(t, params.Has("category_id"))
	assert.False(t, params.Has("tags"))
}

func TestEntity_ShortTitle(t *testing.T) {
	_, err := validate.Entity(articleInput{Title: "a"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	first, ok := ae.First()
	require.True(t, ok)
	assert.Equal(t, "title", first.Field)
	assert.Equal(t, apperr.KindLength, first.Kind)
	assert.Contains(t, first.Message, "title")
}

func TestEntity_FieldPaths(t *testing.T) {
	_, err := validate.Entity(articleInput{
		Title: "Hello",
		Slug:  ptr("Not A Slug"),
		Tags:  []string{"ok", ""},
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.True(t, ae.HasField("slug"))
	assert.True(t, ae.HasField("tags[1]"))
}

func TestStruct_Misuse(t *testing.T) {
	err := validate.Struct(42)
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

func seedCategory(t *testing.T, db store.Store, slugValue string) int64 {
	t.Helper()
	row, err := db.Insert(context.Background(), schema.Categories.Table, store.Record{
		"name": slugValue,
		"slug": slugValue,
	})
	require.NoError(t, err)
	return row.Int64("id")
}

func TestReferences(t *testing.T) {
	ctx := context.Background()
	db := storetest.New()
	helper := query.NewHelper(db, config.UniqueExcludeDeleted)
	categoryID := seedCategory(t, db, "news")

	err := validate.References(ctx, helper, schema.Articles.Table, validate.Params{"category_id": categoryID})
	assert.NoError(t, err)

	err = validate.References(ctx, helper, schema.Articles.Table, validate.Params{"category_id": int64(99999)})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	first, _ := ae.First()
	assert.Equal(t, "category_id", first.Field)
	assert.Equal(t, apperr.KindReference, first.Kind)
	assert.Equal(t, "Category ID does not exist", first.Message)

	// Absent references are not checked.
	assert.NoError(t, validate.References(ctx, helper, schema.Articles.Table, validate.Params{}))
}

func TestReferences_SoftDeletedTargetIsMissing(t *testing.T) {
	ctx := context.Background()
	db := storetest.New()
	helper := query.NewHelper(db, config.UniqueExcludeDeleted)
	categoryID := seedCategory(t, db, "archive")

	_, err := db.Update(ctx, schema.Categories.Table, store.Eq("id", categoryID), store.Record{"is_deleted": int64(1)})
	require.NoError(t, err)

	err = validate.References(ctx, helper, schema.Articles.Table, validate.Params{"category_id": categoryID})
	assertFieldError(t, err, "category_id")
}

func TestUnique(t *testing.T) {
	ctx := context.Background()
	db := storetest.New()
	helper := query.NewHelper(db, config.UniqueExcludeDeleted)
	id := seedCategory(t, db, "news")

	err := validate.Unique(ctx, helper, schema.Categories.Table, validate.Params{"slug": "news"}, nil)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	first, _ := ae.First()
	assert.Equal(t, "slug", first.Field)
	assert.Equal(t, apperr.KindUnique, first.Kind)

	// A row keeps its own value on update.
	assert.NoError(t, validate.Unique(ctx, helper, schema.Categories.Table, validate.Params{"slug": "news"}, id))
	assert.NoError(t, validate.Unique(ctx, helper, schema.Categories.Table, validate.Params{"slug": "sports"}, nil))
}
