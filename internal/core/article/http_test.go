// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/article"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (v stubVerifier) Verify(_ context.Context, token string) (*sec.AuthClaims, string, error) {
	claims, ok := v[token]
	if !ok {
		return nil, "", apperr.Unauthorized("Invalid token")
	}
	return claims, "session", nil
}

func TestHTTP_Articles(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	router.Mount("/articles", article.NewHandler(f.service).Routes(
		middleware.Authorize(stubVerifier{"ada": f.author, "bob": f.other})))

	serve := func(method, path, token, body string) (int, map[string]any) {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		return recorder.Code, envelope
	}

	status, body := serve(http.MethodPost, "/articles", "ada",
		fmt.Sprintf(`{"title":"Hello Folio","content":"Long text","category_id":%d,"published":true}`, f.categoryID))
	require.Equal(t, http.StatusCreated, status)
	created := body["data"].(map[string]any)
	assert.Equal(t, "hello-folio", created["slug"])
	assert.NotNil(t, created["published_date"])
	path := fmt.Sprintf("/articles/%d", int64(created["id"].(float64)))

	status, body = serve(http.MethodPost, "/articles", "ada", `{"title":"X","content":"y"}`)
	require.Equal(t, http.StatusBadRequest, status)
	message := body["message"].(map[string]any)
	assert.Equal(t, "title", message["field"])

	status, body = serve(http.MethodGet, "/articles", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
	listed := body["data"].([]any)[0].(map[string]any)
	assert.NotContains(t, listed, "content")

	status, body = serve(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, status)
	detail := body["data"].(map[string]any)
	assert.Equal(t, "Long text", detail["content"])
	assert.Equal(t, "Ada", detail["author"].(map[string]any)["name"])

	status, _ = serve(http.MethodDelete, path, "bob", "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = serve(http.MethodDelete, path, "ada", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = serve(http.MethodGet, "/articles", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])
}
