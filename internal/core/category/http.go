// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns the /categories router.
//
// # Endpoints
//   - GET    /      : Paginated list (public).
//   - GET    /{id}  : Detail (public).
//   - POST   /      : Create (authorized).
//   - PATCH  /{id}  : Partial update (authorized).
//   - DELETE /{id}  : Soft delete (admin).
func (handler *Handler) Routes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)

	router.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/", handler.createCategory)
		r.Patch("/{id}", handler.updateCategory)
		r.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteCategory)
	})

	return router
}

/*
GET /api/v1/categories.

Request:
  - query: page, limit, sort, search (name or slug), status, is_deleted
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Input(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.List(input, schema.Categories.Table)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, total, err := handler.categoryService.List(request.Context(),
		params.Page(schema.Categories.Name, schema.Categories.Slug))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Categories retrieved", categories, total)
}

// GET /api/v1/categories/{id}.
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Get(request.Context(), params.Int64(validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category retrieved", category)
}

/*
POST /api/v1/categories.

Response:
  - 201: Category
  - 400: ValidationError (schema, unknown parent, taken slug)
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Category created", category)
}

// PATCH /api/v1/categories/{id}.
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
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

	category, err := handler.categoryService.Update(request.Context(), params, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category updated", category)
}

// DELETE /api/v1/categories/{id}.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.Delete(request.Context(), params.Int64(validate.KeyID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category deleted", nil)
}
