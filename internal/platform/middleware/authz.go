// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// SessionVerifier checks a bearer token against its signature and its
// session row.
//
// The auth service implements it; tests inject fakes.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*sec.AuthClaims, string, error)
}

// Authorize rejects requests without a valid, live session.
//
// # Flow
//  1. Require 'Authorization: Bearer <token>' (401 "No token provided").
//  2. Verify the token and its session through [SessionVerifier].
//  3. Inject the claims and the session id into the request context.
func Authorize(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := requestutil.BearerToken(request)
			if token == "" {
				respond.Error(writer, request, apperr.Unauthorized("No token provided"))
				return
			}

			claims, sessionID, err := verifier.Verify(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithSessionID(ctx, sessionID)
			reportIdentity(ctx, claims.UserID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests whose user does not hold at least role.
//
// Must be registered AFTER [Authorize].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := requestutil.RequiredClaims(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
