// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/folio/internal/platform/database/query"
)

// # User Data Access

// UserRepository is the slice of account storage that authentication needs.
type UserRepository interface {

	/*
		FindByEmail returns the live (not soft-deleted) account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent, storage failures otherwise
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the live account with the given ID.
	FindByID(ctx context.Context, id int64) (*User, error)

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID int64, newHash string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for login sessions.
type SessionRepository interface {

	// Create persists a new session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	/*
		FindByTokenHash returns the session currently bound to tokenHash,
		whatever its status.

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound when no row carries the hash
	*/
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// FindByID returns a session by its primary key.
	FindByID(ctx context.Context, id string) (*Session, error)

	// List returns one page of sessions, optionally restricted to a user (userID > 0).
	List(ctx context.Context, userID int64, page query.Page) ([]*Session, int, error)

	/*
		Revoke sets status = 0 on the active row matching both the token hash
		and the user.

		Returns:
		  - bool: whether a row changed
		  - error: Persistence failures
	*/
	Revoke(ctx context.Context, tokenHash string, userID int64) (bool, error)

	// RevokeByID sets status = 0 on an active session.
	RevokeByID(ctx context.Context, id string) (bool, error)

	// RevokeAll revokes every active session belonging to userID.
	RevokeAll(ctx context.Context, userID int64) (int64, error)

	/*
		Rotate swaps the token hash and expiry of an active session in a single
		conditional update (id, current hash and status = 1 must all match).

		Returns:
		  - bool: false when another request rotated or revoked it first
		  - error: Persistence failures
	*/
	Rotate(ctx context.Context, id, currentHash, nextHash string, expiresDate time.Time) (bool, error)

	// PurgeExpired soft-deletes every session whose expiry is before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// # Volatile Data Access

// ResetTokenRepository stores short-lived password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token associated with a userID for a limited duration.
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	Get(ctx context.Context, token string) (int64, error)

	// Delete removes a reset token after successful use.
	Delete(ctx context.Context, token string) error
}
