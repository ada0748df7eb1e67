// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func keys(body map[string]any) []string {
	return slices.Collect(maps.Keys(body))
}

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, "Article retrieved", map[string]any{"id": 1})

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, "v1", body["version"])
	assert.Equal(t, "Article retrieved", body["message"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.NotContains(t, body, "total")
}

func TestPaginated_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, "Articles retrieved", []int{}, 25)

	body := decode(t, recorder)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, true, body["success"])
}

func TestCreated_Status(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, "Project created", nil)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, float64(201), decode(t, recorder)["status"])
}

func TestError_FirstFieldErrorBecomesMessage(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/articles", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "title", Message: "title must be at least 3 characters in length", Kind: apperr.KindLength},
		apperr.FieldError{Field: "slug", Message: "slug is required", Kind: apperr.KindRequired},
	))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.ElementsMatch(t, []string{"status", "version", "message", "success"}, keys(body))
	message, ok := body["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "title", message["field"])
	assert.Equal(t, "length", message["kind"])
	assert.NotContains(t, body, "data")
}

func TestError_PlainMessage(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/articles/9", nil)

	respond.Error(recorder, request, apperr.NotFound("Article"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decode(t, recorder)
	assert.IsType(t, "", body["message"])
	assert.ElementsMatch(t, []string{"status", "version", "message", "success"}, keys(body))
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/articles", nil)

	respond.Error(recorder, request, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, "An unexpected error occurred", body["message"])
}
