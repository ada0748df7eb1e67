// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/migration"
)

// startPostgres boots a disposable database and applies the embedded migrations.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("folio_test"),
		postgres.WithUsername("folio"),
		postgres.WithPassword("folio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(dsn, nil))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStore_Lifecycle(t *testing.T) {
	pool := startPostgres(t)
	db := store.NewPostgresStore(pool)
	ctx := context.Background()
	users := schema.Users.Table

	row, err := db.Insert(ctx, users, store.Record{
		"email": "a@b.com", "name": "Ada", "password_hash": "x",
	})
	require.NoError(t, err)
	id := row.Int64("id")
	assert.Positive(t, id)
	assert.Equal(t, int64(1), row.Int64(schema.ColStatus))
	assert.False(t, row.Time(schema.ColCreatedDate).IsZero())

	// Partial unique index rejects the duplicate while the first row is live.
	_, err = db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "Bob", "password_hash": "x"})
	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	affected, err := db.Update(ctx, users, store.Eq("id", id), store.Record{
		schema.ColStatus: 0, schema.ColIsDeleted: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	live, err := db.Count(ctx, users, store.And(store.Eq(schema.ColStatus, 1), store.Eq(schema.ColIsDeleted, 0)))
	require.NoError(t, err)
	assert.Zero(t, live)

	_, err = db.Insert(ctx, users, store.Record{"email": "a@b.com", "name": "Cy", "password_hash": "x"})
	assert.NoError(t, err)

	rows, err := db.Select(ctx, store.SelectQuery{
		Table:  users,
		Fields: schema.Users.PublicColumns(),
		Where:  store.Contains("name", "a"),
		Sort:   "id",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0], "password_hash")
}
