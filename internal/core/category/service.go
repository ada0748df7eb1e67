// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/crud"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

// Service implements category management.
type Service struct {
	categories *crud.Repository
	logger     *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(helper *query.Helper, logger *slog.Logger) *Service {
	return &Service{
		categories: crud.New(helper, schema.Categories.Table, resource, nil),
		logger:     logger,
	}
}

// List returns one page of categories and the total number of matches.
func (service *Service) List(ctx context.Context, page query.Page) ([]*Category, int, error) {
	rows, total, err := service.categories.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(rows, categoryFromRecord), total, nil
}

// Get returns the category with id, including soft-deleted ones.
func (service *Service) Get(ctx context.Context, id int64) (*Category, error) {
	row, err := service.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return categoryFromRecord(row), nil
}

/*
Create validates input and stores a new category.

Description: Schema validation, slug derivation, parent existence and slug
uniqueness run in that order; the first failing step is reported.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Category, error) {
	params, err := validate.Entity(input)
	if err != nil {
		return nil, err
	}

	if err := service.check(ctx, params, nil); err != nil {
		return nil, err
	}

	row, err := service.categories.Create(ctx, params.Record(schema.Categories.Table))
	if err != nil {
		return nil, err
	}

	category := categoryFromRecord(row)
	service.logger.InfoContext(ctx, "category_created",
		slog.Int64("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}

// Update applies a partial update to the live category named by path.
func (service *Service) Update(ctx context.Context, path validate.Params, input UpdateInput) (*Category, error) {
	params, err := validate.Patch(path, input)
	if err != nil {
		return nil, err
	}
	id := params.Int64(validate.KeyID)

	if _, err := service.categories.GetLive(ctx, id); err != nil {
		return nil, err
	}

	if params.Has(schema.Categories.ParentID) && params.Int64(schema.Categories.ParentID) == id {
		return nil, apperr.FieldInvalid(schema.Categories.ParentID, apperr.KindReference,
			"Parent ID cannot reference the category itself")
	}

	if err := service.check(ctx, params, id); err != nil {
		return nil, err
	}

	row, err := service.categories.Update(ctx, id, params.Record(schema.Categories.Table))
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "category_updated", slog.Int64("category_id", id))
	return categoryFromRecord(row), nil
}

// Delete soft-deletes the live category id.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "category_deleted", slog.Int64("category_id", id))
	return nil
}

// check runs the database-backed steps of the pipeline. exceptID is nil on create.
func (service *Service) check(ctx context.Context, params validate.Params, exceptID any) error {
	if exceptID == nil {
		if err := validate.DeriveSlug(params, schema.Categories.Slug, schema.Categories.Name); err != nil {
			return err
		}
	}

	helper := service.categories.Helper()
	if err := validate.References(ctx, helper, schema.Categories.Table, params); err != nil {
		return err
	}
	return validate.Unique(ctx, helper, schema.Categories.Table, params, exceptID)
}
