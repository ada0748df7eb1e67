// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Definitions & Constructors

// Handler implements authentication and session HTTP endpoints.
type Handler struct {
	authService      *Service
	exposeResetToken bool
}

// NewHandler constructs a new [Handler]. exposeResetToken returns reset
// tokens in the response body (development only).
func NewHandler(service *Service, exposeResetToken bool) *Handler {
	return &Handler{authService: service, exposeResetToken: exposeResetToken}
}

// Routes returns the /auth router.
//
// # Endpoints
//   - POST /login            : Authenticates and returns a bearer token.
//   - POST /refresh          : Swaps an active token for a new one.
//   - POST /password/forgot  : Issues a password reset token.
//   - POST /password/reset   : Sets a new password, revoking all sessions.
//   - POST /logout           : Revokes the current session (authorized).
//   - GET  /me               : Current account (authorized).
func (handler *Handler) Routes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/password/forgot", handler.forgotPassword)
	router.Post("/password/reset", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// SessionRoutes returns the /sessions router. Every endpoint is authorized;
// non-admins only see their own sessions.
func (handler *Handler) SessionRoutes(authorize func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(authorize)

	router.Get("/", handler.listSessions)
	router.Get("/{id}", handler.getSession)
	router.Delete("/{id}", handler.revokeSession)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: TokenResult: Bearer token and user profile
  - 400: Missing or malformed email/password
  - 401: AuthError on "email" or "password"
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: requestutil.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", result)
}

/*
Refresh extends the caller's session with a new token.

POST /api/v1/auth/refresh

Request:
  - Header: Authorization: Bearer <token>, or Body: {"token": "..."}

Response:
  - 200: TokenResult without user
  - 401: Session revoked, expired, or already refreshed
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.BearerToken(request)
	if token == "" && request.ContentLength != 0 {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = input.Token
	}

	result, err := handler.authService.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Token refreshed", result)
}

/*
Logout revokes the current session.

POST /api/v1/auth/logout
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), requestutil.BearerToken(request), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Logout successful", nil)
}

/*
Me returns the authenticated account.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved", user)
}

/*
ForgotPassword issues a reset token for an email.

POST /api/v1/auth/password/forgot

Description: Always answers 200, whether the email exists or not. The token
is returned in the body only in development. Otherwise only its digest is
logged, so the log cannot be used to reset the password.
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var data map[string]string
	if token != "" {
		if handler.exposeResetToken {
			data = map[string]string{FieldToken: token}
		} else {
			ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "password_reset_requested",
				slog.String("email", input.Email),
				slog.String("token_digest", sec.HashToken(token)),
			)
		}
	}

	respond.OK(writer, "If the email exists, a reset token has been issued", data)
}

/*
ResetPassword sets a new password from a reset token.

POST /api/v1/auth/password/reset
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Password has been reset", nil)
}

// # Session Administration

/*
ListSessions returns one page of sessions.

GET /api/v1/sessions?page=&limit=&sort=&search=&status=&is_deleted=
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := requestutil.Input(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params, err := validate.List(input, schema.Sessions.Table)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, total, err := handler.authService.ListSessions(request.Context(), claims,
		params.Page(schema.Sessions.Devices, schema.Sessions.IPAddress))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Sessions retrieved", sessions, total)
}

/*
GetSession returns a single session.

GET /api/v1/sessions/{id}
*/
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	claims, id, err := sessionTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.GetSession(request.Context(), claims, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Session retrieved", session)
}

/*
RevokeSession revokes a session.

DELETE /api/v1/sessions/{id}
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	claims, id, err := sessionTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RevokeSession(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Session revoked", nil)
}

func sessionTarget(request *http.Request) (*sec.AuthClaims, string, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return nil, "", err
	}

	id := requestutil.ID(request, validate.KeyID)
	if !uuid.IsValid(id) {
		return nil, "", apperr.FieldInvalid(validate.KeyID, apperr.KindFormat, "ID must be a valid UUID")
	}
	return claims, id, nil
}
