// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil attaches and reads the values the middleware chain puts on a
request: request id, logger, caller claims and session id.

Readers never fail. A missing value yields its zero value, and a missing
logger yields [slog.Default], so the same services run unchanged from the CLI
and the session cleaner where no middleware ran.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/ctxkey"
	"github.com/taibuivan/folio/internal/platform/sec"
)

func lookup[T any](ctx context.Context, k any) T {
	value, _ := ctx.Value(k).(T)
	return value
}

// WithRequestID attaches the correlation id echoed in X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "".
func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.KeyRequestID)
}

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, ctxkey.KeyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches the verified claims of the caller.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the caller's claims, or nil on public routes.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	return lookup[*sec.AuthClaims](ctx, ctxkey.KeyUser)
}

// WithSessionID attaches the id of the session that authorized the request.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, id)
}

// GetSessionID returns the authorizing session id, or "".
func GetSessionID(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.KeySession)
}
