// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/crud"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
)

func newUsers() *crud.Repository {
	helper := query.NewHelper(storetest.New(), config.UniqueExcludeDeleted)
	return crud.New(helper, schema.Users.Table, "User", schema.Users.PublicColumns())
}

func TestRepository_CreateHidesColumns(t *testing.T) {
	users := newUsers()
	row, err := users.Create(context.Background(), store.Record{
		"email": "a@folio.app", "name": "A", "password_hash": "x",
	})
	require.NoError(t, err)

	assert.NotContains(t, row, "password_hash")
	assert.Equal(t, "a@folio.app", row.String("email"))
	assert.Equal(t, int64(1), row.Int64("status"))
}

func TestRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	users := newUsers()
	row, err := users.Create(ctx, store.Record{"email": "a@folio.app", "name": "A", "password_hash": "x"})
	require.NoError(t, err)
	id := row.Int64("id")

	require.NoError(t, users.SoftDelete(ctx, id))

	// Gone from the default listing.
	rows, total, err := users.List(ctx, query.Page{Where: query.Live()})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)

	// Still fetchable by id, flagged.
	deleted, err := users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.Int64("is_deleted"))
	assert.Equal(t, int64(0), deleted.Int64("status"))

	// But not live, and not deletable twice.
	_, err = users.GetLive(ctx, id)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(users.SoftDelete(ctx, id), apperr.CodeNotFound))

	// The email is free again.
	_, err = users.Create(ctx, store.Record{"email": "a@folio.app", "name": "A2", "password_hash": "y"})
	assert.NoError(t, err)
}

func TestRepository_UpdateConflict(t *testing.T) {
	ctx := context.Background()
	users := newUsers()
	_, err := users.Create(ctx, store.Record{"email": "a@folio.app", "name": "A", "password_hash": "x"})
	require.NoError(t, err)
	second, err := users.Create(ctx, store.Record{"email": "b@folio.app", "name": "B", "password_hash": "x"})
	require.NoError(t, err)

	_, err = users.Update(ctx, second.Int64("id"), store.Record{"email": "a@folio.app"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.True(t, ae.HasField("email"))

	updated, err := users.Update(ctx, second.Int64("id"), store.Record{"name": "Bee"})
	require.NoError(t, err)
	assert.Equal(t, "Bee", updated.String("name"))

	_, err = users.Update(ctx, 404, store.Record{"name": "Nobody"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestRepository_WritesTouchUpdatedDate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	helper := query.NewHelper(storetest.New(storetest.WithClock(clock)), config.UniqueExcludeDeleted)
	users := crud.New(helper, schema.Users.Table, "User", schema.Users.PublicColumns())

	row, err := users.Create(ctx, store.Record{"email": "a@folio.app", "name": "A", "password_hash": "x"})
	require.NoError(t, err)
	id := row.Int64("id")

	now = now.Add(time.Hour)
	updated, err := users.Update(ctx, id, store.Record{"name": "B"})
	require.NoError(t, err)
	assert.Equal(t, now, updated.Time(schema.ColUpdatedDate))
	assert.Equal(t, now.Add(-time.Hour), updated.Time(schema.ColCreatedDate))

	now = now.Add(time.Hour)
	require.NoError(t, users.SoftDelete(ctx, id))
	deleted, err := users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, now, deleted.Time(schema.ColUpdatedDate))
}
