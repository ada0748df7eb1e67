// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/pkg/pointer"
)

type revoker struct {
	revoked []int64
}

func (r *revoker) RevokeAll(_ context.Context, userID int64) (int64, error) {
	r.revoked = append(r.revoked, userID)
	return 1, nil
}

type fixture struct {
	service  *account.Service
	db       *storetest.MemoryStore
	sessions *revoker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storetest.New()
	sessions := &revoker{}
	helper := query.NewHelper(db, config.UniqueExcludeDeleted)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service:  account.NewService(helper, sessions, 10, logger),
		db:       db,
		sessions: sessions,
	}
}

func (f *fixture) create(t *testing.T, email string) *account.User {
	t.Helper()
	user, err := f.service.Create(context.Background(), account.CreateInput{
		Email:    email,
		Name:     "Ada Lovelace",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func admin() *sec.AuthClaims { return &sec.AuthClaims{UserID: 999, Role: string(sec.RoleAdmin)} }

func TestService_CreateHashesPassword(t *testing.T) {
	f := newFixture(t)
	user := f.create(t, "ada@folio.app")

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, 1, user.Status)

	rows, err := f.db.Select(context.Background(), store.SelectQuery{
		Table: schema.Users.Table,
		Where: store.Eq(schema.Users.ID, user.ID),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	hash := rows[0].String(schema.Users.PasswordHash)
	assert.NotEqual(t, "correct-horse", hash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", hash))
}

func TestService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	f.create(t, "ada@folio.app")

	_, err := f.service.Create(context.Background(), account.CreateInput{
		Email: "ada@folio.app", Name: "Ada Two", Password: "long-enough",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.True(t, ae.HasField("email"))
	first, _ := ae.First()
	assert.Equal(t, apperr.KindUnique, first.Kind)

	_, err = f.service.Create(context.Background(), account.CreateInput{
		Email: "not-an-email", Name: "A", Password: "short", Role: pointer.To("root"),
	})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	for _, field := range []string{"email", "name", "password", "role"} {
		assert.True(t, ae.HasField(field), field)
	}
}

func TestService_UpdateSelfOrAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.create(t, "ada@folio.app")
	bob := f.create(t, "bob@folio.app")
	self := &sec.AuthClaims{UserID: ada.ID, Role: string(sec.RoleUser)}

	updated, err := f.service.Update(ctx, self, pathID(ada.ID), account.UpdateInput{Name: pointer.To("Countess")})
	require.NoError(t, err)
	assert.Equal(t, "Countess", updated.Name)

	_, err = f.service.Update(ctx, self, pathID(bob.ID), account.UpdateInput{Name: pointer.To("Hijack")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = f.service.Update(ctx, self, pathID(ada.ID), account.UpdateInput{Role: pointer.To("admin")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	promoted, err := f.service.Update(ctx, admin(), pathID(bob.ID), account.UpdateInput{Role: pointer.To("admin")})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, promoted.Role)

	// Keeping one's own email is not a conflict; taking another's is.
	_, err = f.service.Update(ctx, self, pathID(ada.ID), account.UpdateInput{Email: pointer.To("ada@folio.app")})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, self, pathID(ada.ID), account.UpdateInput{Email: pointer.To("bob@folio.app")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_PasswordChangeRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ada := f.create(t, "ada@folio.app")

	_, err := f.service.Update(context.Background(), admin(), pathID(ada.ID),
		account.UpdateInput{Password: pointer.To("another-secret")})
	require.NoError(t, err)
	assert.Equal(t, []int64{ada.ID}, f.sessions.revoked)
}

func TestService_DeactivationRevokesSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.create(t, "ada@folio.app")

	_, err := f.service.Update(ctx, admin(), pathID(ada.ID), account.UpdateInput{Name: pointer.To("Ada")})
	require.NoError(t, err)
	assert.Empty(t, f.sessions.revoked)

	deactivated, err := f.service.Update(ctx, admin(), pathID(ada.ID), account.UpdateInput{Status: pointer.To(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, deactivated.Status)
	assert.Equal(t, []int64{ada.ID}, f.sessions.revoked)
}

func TestService_DeleteIsSoft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.create(t, "ada@folio.app")
	f.create(t, "bob@folio.app")

	require.NoError(t, f.service.Delete(ctx, admin(), ada.ID))
	assert.Equal(t, []int64{ada.ID}, f.sessions.revoked)

	users, total, err := f.service.List(ctx, query.Page{Where: query.Live()})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "bob@folio.app", users[0].Email)

	deleted, err := f.service.Get(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted.IsDeleted)
	assert.Equal(t, 0, deleted.Status)

	_, err = f.service.Update(ctx, admin(), pathID(ada.ID), account.UpdateInput{Name: pointer.To("Ghost")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(f.service.Delete(ctx, admin(), ada.ID), apperr.CodeNotFound))

	// The email can be registered again.
	f.create(t, "ada@folio.app")
}

func pathID(id int64) validate.Params {
	return validate.Params{validate.KeyID: id}
}

