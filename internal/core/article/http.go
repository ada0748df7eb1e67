// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Handler implements the article HTTP endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new article [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns the /articles router.
//
// # Endpoints
//   - GET    /      : Paginated list without content (public).
//   - GET    /{id}  : Detail with author and category (public).
//   - POST   /      : Create (authorized).
//   - PATCH  /{id}  : Partial update (author or admin).
//   - DELETE /{id}  : Soft delete (author or admin).
func (handler *Handler) Routes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listArticles)
	router.Get("/{id}", handler.getArticle)

	router.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/", handler.createArticle)
		r.Patch("/{id}", handler.updateArticle)
		r.Delete("/{id}", handler.deleteArticle)
	})

	return router
}

/*
GET /api/v1/articles.

Request:
  - query: page, limit, sort, search (title or excerpt), status, is_deleted
*/
func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Input(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.List(input, schema.Articles.Table)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articles, total, err := handler.articleService.List(request.Context(),
		params.Page(schema.Articles.Title, schema.Articles.Excerpt))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Articles retrieved", articles, total)
}

/*
GET /api/v1/articles/{id}.

Response:
  - 200: Detail
  - 404: NotFound
*/
func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Get(request.Context(), params.Int64(validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Article retrieved", article)
}

/*
POST /api/v1/articles.

Response:
  - 201: Article
  - 400: ValidationError (schema, unknown author/category, taken slug)
  - 403: author_id names someone else
*/
func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Create(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Article created", article)
}

// PATCH /api/v1/articles/{id}.
func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Update(request.Context(), claims, params, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Article updated", article)
}

// DELETE /api/v1/articles/{id}.
func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.articleService.Delete(request.Context(), claims, params.Int64(validate.KeyID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Article deleted", nil)
}
