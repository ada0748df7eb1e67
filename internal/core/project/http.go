// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

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

// Handler implements the project HTTP endpoints.
type Handler struct {
	projectService *Service
}

// NewHandler constructs a new project [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{projectService: service}
}

// Routes returns the /projects router.
//
// # Endpoints
//   - GET    /      : Paginated list (public).
//   - GET    /{id}  : Detail (public).
//   - POST   /      : Create (authorized).
//   - PATCH  /{id}  : Partial update (authorized).
//   - DELETE /{id}  : Soft delete (admin).
func (handler *Handler) Routes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProjects)
	router.Get("/{id}", handler.getProject)

	router.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/", handler.createProject)
		r.Patch("/{id}", handler.updateProject)
		r.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteProject)
	})

	return router
}

/*
GET /api/v1/projects.

Request:
  - query: page, limit, sort, search (name or description), status, is_deleted
*/
func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Input(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.List(input, schema.Projects.Table)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	projects, total, err := handler.projectService.List(request.Context(),
		params.Page(schema.Projects.Name, schema.Projects.Description))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Projects retrieved", projects, total)
}

// GET /api/v1/projects/{id}.
func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.projectService.Get(request.Context(), params.Int64(validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Project retrieved", project)
}

/*
POST /api/v1/projects.

Response:
  - 201: Project
  - 400: ValidationError
*/
func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.projectService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Project created", project)
}

// PATCH /api/v1/projects/{id}.
func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
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

	project, err := handler.projectService.Update(request.Context(), params, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Project updated", project)
}

// DELETE /api/v1/projects/{id}.
func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.projectService.Delete(request.Context(), params.Int64(validate.KeyID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Project deleted", nil)
}
