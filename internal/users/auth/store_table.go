// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// # User Repository

// TableUserRepository implements [UserRepository] on the users table.
type TableUserRepository struct {
	helper *query.Helper
}

// NewUserRepository creates a users-table backed repository.
func NewUserRepository(helper *query.Helper) *TableUserRepository {
	return &TableUserRepository{helper: helper}
}

func (repository *TableUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	record, err := repository.helper.First(ctx, schema.Users.Table, nil, store.And(
		store.Eq(schema.Users.Email, email),
		store.Eq(schema.ColIsDeleted, constants.NotDeleted),
	), "User")
	if err != nil {
		return nil, err
	}
	return userFromRecord(record), nil
}

func (repository *TableUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	record, err := repository.helper.First(ctx, schema.Users.Table, nil, store.And(
		store.Eq(schema.Users.ID, id),
		store.Eq(schema.ColIsDeleted, constants.NotDeleted),
	), "User")
	if err != nil {
		return nil, err
	}
	return userFromRecord(record), nil
}

func (repository *TableUserRepository) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	affected, err := repository.helper.Store().Update(ctx, schema.Users.Table,
		store.And(
			store.Eq(schema.Users.ID, userID),
			store.Eq(schema.ColIsDeleted, constants.NotDeleted),
		),
		store.Record{schema.Users.PasswordHash: newHash},
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("auth_update_password_failed: %w", err), "User")
	}
	if affected == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Session Repository

// TableSessionRepository implements [SessionRepository] on the sessions table.
type TableSessionRepository struct {
	helper *query.Helper
}

// NewSessionRepository creates a sessions-table backed repository.
func NewSessionRepository(helper *query.Helper) *TableSessionRepository {
	return &TableSessionRepository{helper: helper}
}

func (repository *TableSessionRepository) db() store.Store {
	return repository.helper.Store()
}

func (repository *TableSessionRepository) Create(ctx context.Context, session *Session) error {
	_, err := repository.db().Insert(ctx, schema.Sessions.Table, store.Record{
		schema.Sessions.ID:          session.ID,
		schema.Sessions.Token:       session.TokenHash,
		schema.Sessions.UserID:      session.UserID,
		schema.Sessions.Devices:     session.Devices,
		schema.Sessions.IPAddress:   session.IPAddress,
		schema.Sessions.ExpiresDate: session.ExpiresDate,
		schema.ColStatus:            constants.StatusActive,
	})
	if err != nil {
		return dberr.Wrap(fmt.Errorf("auth_session_insert_failed: %w", err), "Session")
	}
	return nil
}

func (repository *TableSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	record, err := repository.helper.First(ctx, schema.Sessions.Table, nil, store.And(
		store.Eq(schema.Sessions.Token, tokenHash),
		store.Eq(schema.ColIsDeleted, constants.NotDeleted),
	), "Session")
	if err != nil {
		return nil, err
	}
	return sessionFromRecord(record), nil
}

func (repository *TableSessionRepository) FindByID(ctx context.Context, id string) (*Session, error) {
	record, err := repository.helper.First(ctx, schema.Sessions.Table, schema.Sessions.PublicColumns(),
		store.Eq(schema.Sessions.ID, id), "Session")
	if err != nil {
		return nil, err
	}
	return sessionFromRecord(record), nil
}

func (repository *TableSessionRepository) List(ctx context.Context, userID int64, page query.Page) ([]*Session, int, error) {
	if userID > 0 {
		page.Where = store.And(page.Where, store.Eq(schema.Sessions.UserID, userID))
	}
	page.Fields = schema.Sessions.PublicColumns()

	records, total, err := repository.helper.List(ctx, schema.Sessions.Table, page)
	if err != nil {
		return nil, 0, err
	}

	sessions := make([]*Session, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, sessionFromRecord(record))
	}
	return sessions, total, nil
}

func (repository *TableSessionRepository) Revoke(ctx context.Context, tokenHash string, userID int64) (bool, error) {
	return repository.deactivate(ctx, store.And(
		store.Eq(schema.Sessions.Token, tokenHash),
		store.Eq(schema.Sessions.UserID, userID),
	))
}

func (repository *TableSessionRepository) RevokeByID(ctx context.Context, id string) (bool, error) {
	return repository.deactivate(ctx, store.Eq(schema.Sessions.ID, id))
}

func (repository *TableSessionRepository) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	affected, err := repository.db().Update(ctx, schema.Sessions.Table,
		store.And(
			store.Eq(schema.Sessions.UserID, userID),
			store.Eq(schema.ColStatus, constants.StatusActive),
		),
		store.Record{schema.ColStatus: constants.StatusInactive},
	)
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("auth_session_revoke_all_failed: %w", err), "Session")
	}
	return affected, nil
}

func (repository *TableSessionRepository) deactivate(ctx context.Context, where store.Predicate) (bool, error) {
	affected, err := repository.db().Update(ctx, schema.Sessions.Table,
		store.And(where, store.Eq(schema.ColStatus, constants.StatusActive)),
		store.Record{schema.ColStatus: constants.StatusInactive},
	)
	if err != nil {
		return false, dberr.Wrap(fmt.Errorf("auth_session_revoke_failed: %w", err), "Session")
	}
	return affected > 0, nil
}

func (repository *TableSessionRepository) Rotate(ctx context.Context, id, currentHash, nextHash string, expiresDate time.Time) (bool, error) {
	affected, err := repository.db().Update(ctx, schema.Sessions.Table,
		store.And(
			store.Eq(schema.Sessions.ID, id),
			store.Eq(schema.Sessions.Token, currentHash),
			store.Eq(schema.ColStatus, constants.StatusActive),
		),
		store.Record{
			schema.Sessions.Token:       nextHash,
			schema.Sessions.ExpiresDate: expiresDate,
		},
	)
	if err != nil {
		return false, dberr.Wrap(fmt.Errorf("auth_session_rotate_failed: %w", err), "Session")
	}
	return affected == 1, nil
}

func (repository *TableSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	affected, err := repository.db().Update(ctx, schema.Sessions.Table,
		store.And(
			store.Lt(schema.Sessions.ExpiresDate, now),
			store.Eq(schema.ColIsDeleted, constants.NotDeleted),
		),
		store.Record{
			schema.ColStatus:    constants.StatusInactive,
			schema.ColIsDeleted: constants.Deleted,
		},
	)
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("auth_session_purge_failed: %w", err), "Session")
	}
	return affected, nil
}

// isNotFound reports whether err is an apperr NOT_FOUND.
func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == apperr.CodeNotFound
}
