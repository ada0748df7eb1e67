// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storetest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
)

func TestMemoryStore_InsertAppliesDefaults(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	db := storetest.New(storetest.WithClock(func() time.Time { return fixed }))

	row, err := db.Insert(context.Background(), schema.Categories.Table, store.Record{
		"name": "Go", "slug": "go",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), row.Int64("id"))
	assert.Equal(t, int64(1), row.Int64(schema.ColStatus))
	assert.Equal(t, int64(0), row.Int64(schema.ColIsDeleted))
	assert.True(t, row.Bool("is_active"))
	assert.Equal(t, fixed, row.Time(schema.ColCreatedDate))
	assert.True(t, row.IsNull("parent_id"))
}

func TestMemoryStore_RejectsUnknownColumns(t *testing.T) {
	db := storetest.New()
	ctx := context.Background()

	_, err := db.Insert(ctx, schema.Categories.Table, store.Record{"nope": 1})
	assert.ErrorIs(t, err, store.ErrUnknownField)

	_, err = db.Select(ctx, store.SelectQuery{Table: schema.Categories.Table, Sort: "name; DROP"})
	assert.ErrorIs(t, err, store.ErrUnknownField)

	_, err = db.Count(ctx, schema.Categories.Table, store.Eq("bogus", 1))
	assert.ErrorIs(t, err, store.ErrUnknownField)
}

func TestMemoryStore_PartialUniqueIndex(t *testing.T) {
	db := storetest.New()
	ctx := context.Background()
	users := schema.Users.Table

	_, err := db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "A"})
	require.NoError(t, err)

	_, err = db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "B"})
	var conflict *store.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "email", conflict.Field)
	assert.ErrorIs(t, err, store.ErrConflict)

	// Soft-deleting the first row frees the value.
	affected, err := db.Update(ctx, users, store.Eq("id", int64(1)), store.Record{
		schema.ColStatus: 0, schema.ColIsDeleted: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "C"})
	assert.NoError(t, err)
}

func TestMemoryStore_SelectOrdersAndPages(t *testing.T) {
	db := storetest.New()
	ctx := context.Background()
	projects := schema.Projects.Table

	for _, name := range []string{"delta", "alpha", "charlie", "bravo"} {
		_, err := db.Insert(ctx, projects, store.Record{"name": name})
		require.NoError(t, err)
	}

	rows, err := db.Select(ctx, store.SelectQuery{
		Table:  projects,
		Fields: []string{"id", "name"},
		Sort:   "name",
		Limit:  2,
		Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bravo", rows[0].String("name"))
	assert.Equal(t, "charlie", rows[1].String("name"))
	assert.NotContains(t, rows[0], "description")

	rows, err = db.Select(ctx, store.SelectQuery{Table: projects, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_UpdateIsConditional(t *testing.T) {
	db := storetest.New()
	ctx := context.Background()
	sessions := schema.Sessions.Table

	_, err := db.Insert(ctx, sessions, store.Record{"id": "s1", "token": "old", "user_id": int64(1)})
	require.NoError(t, err)

	where := store.And(store.Eq("id", "s1"), store.Eq("token", "old"), store.Eq(schema.ColStatus, 1))

	affected, err := db.Update(ctx, sessions, where, store.Record{"token": "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// The same guarded update now finds nothing.
	affected, err = db.Update(ctx, sessions, where, store.Record{"token": "newer"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestMatch(t *testing.T) {
	row := store.Record{
		"id": int64(7), "title": "Hello Go", "parent_id": nil, "status": int16(1),
		"created_date": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, storetest.Match(store.Eq("status", 1), row))
	assert.True(t, storetest.Match(store.Eq("parent_id", nil), row))
	assert.True(t, storetest.Match(store.Ne("parent_id", int64(2)), row))
	assert.True(t, storetest.Match(store.Like("title", "%go%"), row))
	assert.False(t, storetest.Match(store.Like("title", "go%"), row))
	assert.True(t, storetest.Match(store.In("id", 1, 7), row))
	assert.True(t, storetest.Match(store.Lt("created_date", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)), row))
	assert.False(t, storetest.Match(store.Or(), row))
	assert.True(t, storetest.Match(store.And(), row))
}

func TestMatch_ContainsIsLiteral(t *testing.T) {
	p := store.Contains("title", "50%_off")

	assert.True(t, storetest.Match(p, store.Record{"title": "get 50%_off today"}))
	assert.False(t, storetest.Match(p, store.Record{"title": "get 50 percent off"}))
}

func TestMemoryStore_UpdateStampsUpdatedDate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db := storetest.New(storetest.WithClock(func() time.Time { return now }))
	ctx := context.Background()
	users := schema.Users.Table

	row, err := db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "A"})
	require.NoError(t, err)
	created := row.Time(schema.ColUpdatedDate)

	now = now.Add(time.Hour)
	_, err = db.Update(ctx, users, store.Eq("id", row.Int64("id")), store.Record{"name": "B"})
	require.NoError(t, err)

	rows, err := db.Select(ctx, store.SelectQuery{Table: users, Where: store.Eq("id", row.Int64("id"))})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].String("name"))
	assert.Equal(t, created, rows[0].Time(schema.ColCreatedDate))
	assert.Equal(t, now, rows[0].Time(schema.ColUpdatedDate))
}
