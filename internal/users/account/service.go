// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/database/crud"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

// SessionRevoker ends every session of a user (implemented by the auth
// session repository).
type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID int64) (int64, error)
}

// Service implements user management on top of the users table.
type Service struct {
	users      *crud.Repository
	sessions   SessionRevoker
	bcryptCost int
	logger     *slog.Logger
}

// NewService constructs a new account [Service]. sessions may be nil, in
// which case deleting a user leaves their sessions to expire.
func NewService(helper *query.Helper, sessions SessionRevoker, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		users:      crud.New(helper, schema.Users.Table, resource, schema.Users.PublicColumns()),
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// # Reads

// List returns one page of users and the total number of matches.
func (service *Service) List(ctx context.Context, page query.Page) ([]*User, int, error) {
	rows, total, err := service.users.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(rows, userFromRecord), total, nil
}

// Get returns the user with id, including soft-deleted ones.
func (service *Service) Get(ctx context.Context, id int64) (*User, error) {
	row, err := service.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return userFromRecord(row), nil
}

// # Writes

/*
Create validates input and stores a new user.

Description: The pipeline runs schema validation, then the email uniqueness
check, then hashes the password. Role defaults to "user".

Returns:
  - *User: the stored user
  - error: ValidationError on any field, or a store failure
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	params, err := validate.Entity(input)
	if err != nil {
		return nil, err
	}

	if err := validate.Unique(ctx, service.users.Helper(), schema.Users.Table, params, nil); err != nil {
		return nil, err
	}

	if err := service.hashPassword(params); err != nil {
		return nil, err
	}

	row, err := service.users.Create(ctx, params.Record(schema.Users.Table))
	if err != nil {
		return nil, err
	}

	user := userFromRecord(row)
	service.logger.InfoContext(ctx, "user_created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

/*
Update applies a partial update to the user named by path on behalf of actor.

A password change or deactivation (status 0) revokes every session of the
user.

Returns:
  - *User: the updated user
  - error: Forbidden when a non-admin targets another user or an admin-only
    field, NotFound when id is unknown or deleted, ValidationError otherwise
*/
func (service *Service) Update(ctx context.Context, actor *sec.AuthClaims, path validate.Params, input UpdateInput) (*User, error) {
	id := path.Int64(validate.KeyID)
	admin := sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin)
	if !admin && actor.UserID != id {
		return nil, apperr.Forbidden("You can only update your own account")
	}
	if !admin && input.privileged() {
		return nil, apperr.Forbidden("Only admins can change role, status or verification")
	}

	params, err := validate.Patch(path, input)
	if err != nil {
		return nil, err
	}

	if _, err := service.users.GetLive(ctx, id); err != nil {
		return nil, err
	}

	if err := validate.Unique(ctx, service.users.Helper(), schema.Users.Table, params, id); err != nil {
		return nil, err
	}

	revoke := params.Has(fieldPassword) ||
		(params.Has(schema.ColStatus) && params.Int(schema.ColStatus) == constants.StatusInactive)
	if err := service.hashPassword(params); err != nil {
		return nil, err
	}

	row, err := service.users.Update(ctx, id, params.Record(schema.Users.Table))
	if err != nil {
		return nil, err
	}

	if revoke {
		service.revokeSessions(ctx, id)
	}

	service.logger.InfoContext(ctx, "user_updated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.UserID),
	)
	return userFromRecord(row), nil
}

// Delete soft-deletes user id and revokes their sessions.
func (service *Service) Delete(ctx context.Context, actor *sec.AuthClaims, id int64) error {
	if err := service.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.revokeSessions(ctx, id)

	service.logger.InfoContext(ctx, "user_deleted",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.UserID),
	)
	return nil
}

// hashPassword replaces the plain "password" key with "password_hash".
func (service *Service) hashPassword(params validate.Params) error {
	if !params.Has(fieldPassword) {
		return nil
	}

	hash, err := sec.HashPassword(params.String(fieldPassword), service.bcryptCost)
	if err != nil {
		return apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}

	delete(params, fieldPassword)
	params[schema.Users.PasswordHash] = hash
	return nil
}

// revokeSessions is best effort: the account change already succeeded.
func (service *Service) revokeSessions(ctx context.Context, userID int64) {
	if service.sessions == nil {
		return
	}
	if _, err := service.sessions.RevokeAll(ctx, userID); err != nil {
		service.logger.WarnContext(ctx, "user_sessions_revoke_failed",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
	}
}
