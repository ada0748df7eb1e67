// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

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

// Handler implements the HTTP layer for user management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the /users router. Every endpoint is authorized.
//
// # Endpoints
//   - GET    /      : Paginated user list.
//   - POST   /      : Create a user (admin).
//   - GET    /{id}  : User detail.
//   - PATCH  /{id}  : Partial update (self or admin).
//   - DELETE /{id}  : Soft delete (admin).
func (handler *Handler) Routes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(authorize)

	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createUser)
		r.Delete("/{id}", handler.deleteUser)
	})

	return router
}

/*
GET /api/v1/users.

Request:
  - query: page, limit, sort, search (name or email), status, is_deleted

Response:
  - 200: []User with total
  - 400: ValidationError on a list parameter
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	input, err := requestutil.Input(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.List(input, schema.Users.Table)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	users, total, err := handler.accountService.List(request.Context(),
		params.Page(schema.Users.Name, schema.Users.Email))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Users retrieved", users, total)
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: User
  - 404: NotFound
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	params, err := validate.PathID(requestutil.ID(request, validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), params.Int64(validate.KeyID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved", user)
}

/*
POST /api/v1/users.

Request:
  - body: CreateInput

Response:
  - 201: User
  - 400: ValidationError (including a taken email)
  - 403: Caller is not an admin
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User created", user)
}

/*
PATCH /api/v1/users/{id}.

Request:
  - body: UpdateInput (partial)

Response:
  - 200: User
  - 403: Not the caller's account, or an admin-only field
  - 404: NotFound
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
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

	user, err := handler.accountService.Update(request.Context(), claims, params, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User updated", user)
}

/*
DELETE /api/v1/users/{id}.

Response:
  - 200: Soft-deleted
  - 404: NotFound or already deleted
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.accountService.Delete(request.Context(), claims, params.Int64(validate.KeyID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User deleted", nil)
}
