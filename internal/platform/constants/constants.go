// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Envelope: API version and JSON field names of the response envelope.
  - Pagination: list defaults and bounds.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "folio-api"
	AppVersion = "0.1.0-dev"

	// APIVersion is echoed in every response envelope.
	APIVersion = "v1"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
	HeaderContentType   = "Content-Type"

	// MaxBodyBytes bounds every decoded request body.
	MaxBodyBytes = 1 << 20
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "folio.app"

	// TokenType is returned alongside every issued token.
	TokenType = "Bearer"

	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"

	// MinBcryptCost is the lowest accepted hashing cost.
	MinBcryptCost = 10
)

// # Pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 200
	DefaultSort  = "id"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldSuccess = "success"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Record Flags

const (
	StatusActive   = 1
	StatusInactive = 0

	NotDeleted = 0
	Deleted    = 1
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
	RedisLockSessionPurge = "folio:lock:session_purge"
)
