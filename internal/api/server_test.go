// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/core/article"
	"github.com/taibuivan/folio/internal/core/category"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

const (
	adminEmail    = "admin@folio.app"
	adminPassword = "admin-password"
)

type resets map[string]int64

func (r resets) Set(_ context.Context, token string, userID int64, _ time.Duration) error {
	r[token] = userID
	return nil
}

func (r resets) Get(_ context.Context, token string) (int64, error) {
	userID, ok := r[token]
	if !ok {
		return 0, apperr.FieldInvalid("token", apperr.KindAuth, "Reset token is invalid or expired")
	}
	return userID, nil
}

func (r resets) Delete(_ context.Context, token string) error {
	delete(r, token)
	return nil
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := storetest.New()
	helper := query.NewHelper(db, config.UniqueExcludeDeleted)

	hash, err := sec.HashPassword(adminPassword, 10)
	require.NoError(t, err)
	_, err = db.Insert(ctx, schema.Users.Table, store.Record{
		schema.Users.Email:        adminEmail,
		schema.Users.Name:         "Admin",
		schema.Users.PasswordHash: hash,
		schema.Users.Role:         string(sec.RoleAdmin),
	})
	require.NoError(t, err)

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "folio.app", time.Hour)
	require.NoError(t, err)

	sessions := auth.NewSessionRepository(helper)
	authService := auth.NewService(auth.NewUserRepository(helper), sessions, resets{}, tokens,
		auth.WithUnitOfWork(auth.NewUnitOfWork(helper)))

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	cfg := &config.Config{ServerPort: "0", Environment: "development"}

	server := api.NewServer(ctx, cfg, logger, authService, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, true),
		Users:      account.NewHandler(account.NewService(helper, sessions, 10, logger)),
		Categories: category.NewHandler(category.NewService(helper, logger)),
		Articles:   article.NewHandler(article.NewService(helper, logger)),
		Projects:   project.NewHandler(project.NewService(helper, logger)),
	})
	return server.Handler()
}

func call(t *testing.T, handler http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var envelope map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	}
	return recorder, envelope
}

func TestServer_EndToEnd(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder, body := call(t, handler, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	token := body["data"].(map[string]any)["token"].(string)

	recorder, body = call(t, handler, http.MethodPost, "/api/v1/categories", token, `{"name":"Backend"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	categoryID := body["data"].(map[string]any)["id"].(float64)

	recorder, body = call(t, handler, http.MethodPost, "/api/v1/articles", token,
		`{"title":"Building Folio","content":"...","category_id":`+jsonNumber(categoryID)+`,"tags":["go"]}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "building-folio", body["data"].(map[string]any)["slug"])

	recorder, body = call(t, handler, http.MethodPost, "/api/v1/articles", token,
		`{"title":"Orphan","content":"...","category_id":99999}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Category ID does not exist", body["message"].(map[string]any)["message"])

	recorder, body = call(t, handler, http.MethodGet, "/api/v1/articles?limit=10&page=1", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, "v1", body["version"])

	recorder, _ = call(t, handler, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, body = call(t, handler, http.MethodGet, "/api/v1/users", token, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Session revoked", body["message"])
}

func TestServer_Health(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})

	recorder, body := call(t, handler, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])

	recorder, body = call(t, handler, http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, false, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Len(t, data["checks"], 2)
}

func jsonNumber(f float64) string {
	encoded, _ := json.Marshal(int64(f))
	return string(encoded)
}
