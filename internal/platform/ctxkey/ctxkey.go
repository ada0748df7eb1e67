// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey names the request-scoped values the middleware chain hands
// down to handlers and services. Read and write them through ctxutil.
package ctxkey

// key is unexported so no other package can collide with these entries.
type key uint8

const (
	// KeyRequestID holds the X-Request-ID set by middleware.RequestID.
	KeyRequestID key = iota + 1

	// KeyLogger holds the *slog.Logger tagged with the request id.
	KeyLogger

	// KeyUser holds the *sec.AuthClaims of the caller after middleware.Authorize.
	KeyUser

	// KeySession holds the id of the session row that authorized the request.
	KeySession
)
