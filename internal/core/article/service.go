// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/crud"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

// Service implements article management.
type Service struct {
	articles *crud.Repository
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a [Service].
type Option func(*Service)

// WithClock overrides the clock used to stamp published_date.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a new article [Service].
func NewService(helper *query.Helper, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		articles: crud.New(helper, schema.Articles.Table, resource, nil),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Reads

// List returns one page of articles without their content.
func (service *Service) List(ctx context.Context, page query.Page) ([]*Article, int, error) {
	page.Fields = schema.Articles.SummaryColumns()

	rows, total, err := service.articles.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(rows, articleFromRecord), total, nil
}

/*
Get returns the article with id, including soft-deleted ones, with its
author and category resolved.

Description: A dangling or deleted author/category yields a nil summary,
never an error.
*/
func (service *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	row, err := service.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Article: articleFromRecord(row)}

	if detail.AuthorID != nil {
		author, err := service.summary(ctx, schema.Users.Table, authorColumns, *detail.AuthorID)
		if err != nil {
			return nil, err
		}
		if author != nil {
			detail.Author = &AuthorSummary{
				ID:    author.Int64(schema.Users.ID),
				Name:  author.String(schema.Users.Name),
				Email: author.String(schema.Users.Email),
			}
		}
	}

	if detail.CategoryID != nil {
		category, err := service.summary(ctx, schema.Categories.Table, categoryColumns, *detail.CategoryID)
		if err != nil {
			return nil, err
		}
		if category != nil {
			detail.Category = &CategorySummary{
				ID:   category.Int64(schema.Categories.ID),
				Name: category.String(schema.Categories.Name),
				Slug: category.String(schema.Categories.Slug),
			}
		}
	}

	return detail, nil
}

// summary loads the live row id of table, or nil when there is none.
func (service *Service) summary(ctx context.Context, table schema.Table, columns []string, id int64) (store.Record, error) {
	row, err := service.articles.Helper().First(ctx, table, columns, store.And(
		store.Eq(table.PrimaryKey, id),
		store.Eq(schema.ColIsDeleted, 0),
	), table.Name)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	return row, err
}

// # Writes

/*
Create validates input and stores a new article authored by actor.

Description: author_id defaults to the caller. Publishing without a date
stamps published_date with the current time.

Returns:
  - *Article: the stored article
  - error: Forbidden when a non-admin names another author, ValidationError
    on schema, reference or slug failures
*/
func (service *Service) Create(ctx context.Context, actor *sec.AuthClaims, input CreateInput) (*Article, error) {
	params, err := validate.Entity(input)
	if err != nil {
		return nil, err
	}

	if !params.Has(schema.Articles.AuthorID) {
		params[schema.Articles.AuthorID] = actor.UserID
	} else if !isAdmin(actor) && params.Int64(schema.Articles.AuthorID) != actor.UserID {
		return nil, apperr.Forbidden("Only admins can write on behalf of another author")
	}

	service.stampPublished(params, nil)

	if err := service.check(ctx, params, nil); err != nil {
		return nil, err
	}

	row, err := service.articles.Create(ctx, params.Record(schema.Articles.Table))
	if err != nil {
		return nil, err
	}

	article := articleFromRecord(row)
	service.logger.InfoContext(ctx, "article_created",
		slog.Int64("article_id", article.ID),
		slog.Int64("author_id", actor.UserID),
		slog.Bool("published", article.Published),
	)
	return article, nil
}

// Update applies a partial update to the live article named by path.
func (service *Service) Update(ctx context.Context, actor *sec.AuthClaims, path validate.Params, input UpdateInput) (*Article, error) {
	params, err := validate.Patch(path, input)
	if err != nil {
		return nil, err
	}
	id := params.Int64(validate.KeyID)

	current, err := service.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if params.Has(schema.Articles.AuthorID) && !isAdmin(actor) {
		return nil, apperr.Forbidden("Only admins can reassign an article")
	}

	service.stampPublished(params, current)

	if err := service.check(ctx, params, id); err != nil {
		return nil, err
	}

	row, err := service.articles.Update(ctx, id, params.Record(schema.Articles.Table))
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "article_updated",
		slog.Int64("article_id", id),
		slog.Int64("actor_id", actor.UserID),
	)
	return articleFromRecord(row), nil
}

// Delete soft-deletes the live article id.
func (service *Service) Delete(ctx context.Context, actor *sec.AuthClaims, id int64) error {
	if _, err := service.owned(ctx, actor, id); err != nil {
		return err
	}

	if err := service.articles.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "article_deleted",
		slog.Int64("article_id", id),
		slog.Int64("actor_id", actor.UserID),
	)
	return nil
}

// owned loads the live article id and checks that actor may modify it.
func (service *Service) owned(ctx context.Context, actor *sec.AuthClaims, id int64) (store.Record, error) {
	current, err := service.articles.GetLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin(actor) && current.Int64(schema.Articles.AuthorID) != actor.UserID {
		return nil, apperr.Forbidden("You can only modify your own articles")
	}
	return current, nil
}

// stampPublished sets published_date when an article becomes published
// without one. current is nil on create.
func (service *Service) stampPublished(params validate.Params, current store.Record) {
	if !params.Bool(schema.Articles.Published) || params.Has(schema.Articles.PublishedDate) {
		return
	}
	if current != nil && !current.IsNull(schema.Articles.PublishedDate) {
		return
	}
	params[schema.Articles.PublishedDate] = service.now().UTC()
}

// check runs slug derivation, reference and uniqueness checks.
func (service *Service) check(ctx context.Context, params validate.Params, exceptID any) error {
	if exceptID == nil {
		if err := validate.DeriveSlug(params, schema.Articles.Slug, schema.Articles.Title); err != nil {
			return err
		}
	}

	helper := service.articles.Helper()
	if err := validate.References(ctx, helper, schema.Articles.Table, params); err != nil {
		return err
	}
	return validate.Unique(ctx, helper, schema.Articles.Table, params, exceptID)
}

func isAdmin(actor *sec.AuthClaims) bool {
	return sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin)
}
