// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/database/crud"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

// Service implements project management.
type Service struct {
	projects *crud.Repository
	logger   *slog.Logger
}

// NewService constructs a new project [Service].
func NewService(helper *query.Helper, logger *slog.Logger) *Service {
	return &Service{
		projects: crud.New(helper, schema.Projects.Table, resource, nil),
		logger:   logger,
	}
}

// List returns one page of projects and the total number of matches.
func (service *Service) List(ctx context.Context, page query.Page) ([]*Project, int, error) {
	rows, total, err := service.projects.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(rows, projectFromRecord), total, nil
}

// Get returns the project with id, including soft-deleted ones.
func (service *Service) Get(ctx context.Context, id int64) (*Project, error) {
	row, err := service.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectFromRecord(row), nil
}

// Create validates input and stores a new project.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Project, error) {
	params, err := validate.Entity(input)
	if err != nil {
		return nil, err
	}

	row, err := service.projects.Create(ctx, params.Record(schema.Projects.Table))
	if err != nil {
		return nil, err
	}

	project := projectFromRecord(row)
	service.logger.InfoContext(ctx, "project_created", slog.Int64("project_id", project.ID))
	return project, nil
}

// Update applies a partial update to the live project named by path.
func (service *Service) Update(ctx context.Context, path validate.Params, input UpdateInput) (*Project, error) {
	params, err := validate.Patch(path, input)
	if err != nil {
		return nil, err
	}
	id := params.Int64(validate.KeyID)

	row, err := service.projects.Update(ctx, id, params.Record(schema.Projects.Table))
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "project_updated", slog.Int64("project_id", id))
	return projectFromRecord(row), nil
}

// Delete soft-deletes the live project id.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.projects.SoftDelete(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "project_deleted", slog.Int64("project_id", id))
	return nil
}
