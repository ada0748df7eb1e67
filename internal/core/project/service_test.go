// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/store/storetest"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

func newService() *project.Service {
	helper := query.NewHelper(storetest.New(), config.UniqueExcludeDeleted)
	return project.NewService(helper, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_ArraysRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, project.CreateInput{
		Name:      "Folio",
		Source:    pointer.To("https://github.com/taibuivan/folio"),
		Tags:      []string{"api", "crud"},
		Authors:   []string{"Tai"},
		Languages: []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "crud"}, created.Tags)
	assert.Equal(t, []string{"Go", "SQL"}, created.Languages)
	assert.False(t, created.Published)

	updated, err := service.Update(ctx, pathID(created.ID), project.UpdateInput{Tags: []string{"api"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, updated.Tags)
	assert.Equal(t, []string{"Tai"}, updated.Authors)
}

func TestService_Validation(t *testing.T) {
	_, err := newService().Create(context.Background(), project.CreateInput{
		Name:   "F",
		Source: pointer.To("not a url"),
		Tags:   make([]string, 21),
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	for _, field := range []string{"name", "source", "tags"} {
		assert.True(t, ae.HasField(field), field)
	}
}

func TestService_SoftDelete(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, project.CreateInput{Name: "Retired"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	projects, total, err := service.List(ctx, query.Page{Where: query.Live()})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, projects)

	hidden, total, err := service.List(ctx, query.Page{Where: query.Visibility(false, true)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Retired", hidden[0].Name)

	fetched, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.IsDeleted)

	_, err = service.Update(ctx, pathID(created.ID), project.UpdateInput{Name: pointer.To("Revived")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func pathID(id int64) validate.Params {
	return validate.Params{validate.KeyID: id}
}

