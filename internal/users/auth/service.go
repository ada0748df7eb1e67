// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Contracts & Types

// UnitOfWork runs fn with repositories bound to a single transaction.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(users UserRepository, sessions SessionRepository) error) error
}

// TableUnitOfWork implements [UnitOfWork] on a [store.Store].
type TableUnitOfWork struct {
	helper *query.Helper
}

// NewUnitOfWork creates a transactional unit over helper's store.
func NewUnitOfWork(helper *query.Helper) *TableUnitOfWork {
	return &TableUnitOfWork{helper: helper}
}

// Run opens a transaction when the store supports it.
func (unit *TableUnitOfWork) Run(ctx context.Context, fn func(UserRepository, SessionRepository) error) error {
	return store.RunInTx(ctx, unit.helper.Store(), func(tx store.Store) error {
		helper := unit.helper.With(tx)
		return fn(NewUserRepository(helper), NewSessionRepository(helper))
	})
}

// Service implements login, verification and session use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token or
// session logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokens               *sec.TokenService
	unitOfWork           UnitOfWork
	bcryptCost           int
	resetTokenTTL        time.Duration
}

// Option customizes a [Service].
type Option func(*Service)

// WithUnitOfWork makes password resets transactional.
func WithUnitOfWork(unit UnitOfWork) Option {
	return func(service *Service) { service.unitOfWork = unit }
}

// WithBcryptCost sets the hashing cost for new passwords.
func WithBcryptCost(cost int) Option {
	return func(service *Service) { service.bcryptCost = cost }
}

// WithResetTokenTTL sets how long a password reset token stays valid.
func WithResetTokenTTL(ttl time.Duration) Option {
	return func(service *Service) { service.resetTokenTTL = ttl }
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokens *sec.TokenService,
	opts ...Option,
) *Service {
	service := &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokens:               tokens,
		bcryptCost:           constants.MinBcryptCost,
		resetTokenTTL:        30 * time.Minute,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// TokenResult is returned by login and refresh.
type TokenResult struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user,omitempty"`
}

/*
Login validates user credentials and issues a session-bound token.

Description: Looks the account up by email, compares the bcrypt hash, signs
an HS256 token and records a session row. A failed session insert is logged
but does not fail the login.

Returns:
  - *TokenResult: Bearer token and the user (without password hash)
  - err: AuthError on field "email" or "password", or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	user, err := service.userRepository.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.AuthError(FieldEmail, MsgEmailNotFound)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.AuthError(FieldPassword, MsgInvalidPassword)
	}

	if !user.Active() {
		return nil, apperr.AuthError(FieldEmail, MsgAccountInactive)
	}

	token, expiresAt, err := service.tokens.GenerateAccessToken(sec.Identity{
		UserID:   user.ID,
		Username: user.Name,
		Role:     string(user.Role),
		Device:   fingerprint(input.UserAgent, input.IPAddress),
	})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	session := &Session{
		ID:          uuid.New(),
		UserID:      user.ID,
		TokenHash:   sec.HashToken(token),
		Devices:     input.UserAgent,
		IPAddress:   input.IPAddress,
		ExpiresDate: expiresAt,
		Status:      constants.StatusActive,
	}
	if err := service.sessionRepository.Create(ctx, session); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "session_insert_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	return &TokenResult{
		Type:      constants.TokenType,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

/*
Verify authenticates a bearer token. It fails closed.

Description: Checks the signature and expiry, then re-reads the session row
bound to the token, which must be active, unexpired and owned by the token
subject.

Returns:
  - *sec.AuthClaims: Verified claims
  - string: Session ID
  - err: AuthError with one of the boundary messages
*/
func (service *Service) Verify(ctx context.Context, token string) (*sec.AuthClaims, string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, "", apperr.Unauthorized(MsgNoToken)
	}

	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, "", apperr.Unauthorized(MsgSessionExpired)
		}
		return nil, "", apperr.Unauthorized(MsgInvalidToken)
	}

	session, err := service.activeSession(ctx, token)
	if err != nil {
		return nil, "", err
	}

	if session.UserID != claims.UserID {
		return nil, "", apperr.Unauthorized(MsgInvalidToken)
	}

	return claims, session.ID, nil
}

// activeSession loads the session bound to token and checks its state.
func (service *Service) activeSession(ctx context.Context, token string) (*Session, error) {
	session, err := service.sessionRepository.FindByTokenHash(ctx, sec.HashToken(token))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(MsgSessionRevoked)
		}
		return nil, internalError(err)
	}

	if session.Revoked() {
		return nil, apperr.Unauthorized(MsgSessionRevoked)
	}
	if session.Expired(service.tokens.Now()) {
		return nil, apperr.Unauthorized(MsgSessionExpired)
	}
	return session, nil
}

/*
Logout revokes the session bound to token for userID.

Description: Idempotent. An already revoked or unknown session is a success.
*/
func (service *Service) Logout(ctx context.Context, token string, userID int64) error {
	if _, err := service.sessionRepository.Revoke(ctx, sec.HashToken(token), userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
Refresh extends an active session with a new token.

Description: The session row is kept. Its token hash and expiry are swapped
in one conditional update, so of two concurrent refreshes only one wins and
the old token stops working for both refresh and authorization.

Returns:
  - *TokenResult: The new bearer token
  - err: AuthError when the session is not active or lost the race
*/
func (service *Service) Refresh(ctx context.Context, token string) (*TokenResult, error) {
	claims, sessionID, err := service.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(MsgInvalidToken)
		}
		return nil, internalError(err)
	}
	if !user.Active() {
		return nil, apperr.Unauthorized(MsgAccountInactive)
	}

	next, expiresAt, err := service.tokens.GenerateAccessToken(sec.Identity{
		UserID:   user.ID,
		Username: user.Name,
		Role:     string(user.Role),
		Device:   claims.Device,
	})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_refresh_token_failed: %w", err))
	}

	rotated, err := service.sessionRepository.Rotate(ctx, sessionID, sec.HashToken(token), sec.HashToken(next), expiresAt)
	if err != nil {
		return nil, internalError(err)
	}
	if !rotated {
		return nil, apperr.Unauthorized(MsgSessionRevoked)
	}

	return &TokenResult{
		Type:      constants.TokenType,
		Token:     next,
		ExpiresAt: expiresAt,
	}, nil
}

// Me returns the account behind the verified claims.
func (service *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// ListSessions returns one page of sessions. Non-admins only see their own.
func (service *Service) ListSessions(ctx context.Context, claims *sec.AuthClaims, page query.Page) ([]*Session, int, error) {
	return service.sessionRepository.List(ctx, scopeOf(claims), page)
}

// GetSession returns a session visible to claims.
func (service *Service) GetSession(ctx context.Context, claims *sec.AuthClaims, id string) (*Session, error) {
	session, err := service.sessionRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope := scopeOf(claims); scope != 0 && session.UserID != scope {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

// RevokeSession revokes a session visible to claims. Revoking twice succeeds.
func (service *Service) RevokeSession(ctx context.Context, claims *sec.AuthClaims, id string) error {
	if _, err := service.GetSession(ctx, claims, id); err != nil {
		return err
	}
	if _, err := service.sessionRepository.RevokeByID(ctx, id); err != nil {
		return err
	}
	return nil
}

// PurgeExpiredSessions soft-deletes every session past its expiry.
func (service *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return service.sessionRepository.PurgeExpired(ctx, service.tokens.Now())
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves its hash to Redis. An unknown
email yields an empty token and no error, so callers cannot probe accounts.

Returns:
  - string: Reset token, or "" for unknown emails
  - err: Generation or storage errors
*/
func (service *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_generate_reset_token_failed: %w", err))
	}

	if err := service.resetTokenRepository.Set(ctx, token, user.ID, service.resetTokenTTL); err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_save_reset_token_failed: %w", err))
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, stores the new hash and revokes every
session of the user in one transaction, then burns the token.
*/
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := service.resetTokenRepository.Get(ctx, token)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.Internal(err)
	}

	hashedPassword, err := sec.HashPassword(newPassword, service.bcryptCost)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_reset_password_hash_failed: %w", err))
	}

	apply := func(users UserRepository, sessions SessionRepository) error {
		if err := users.UpdatePassword(ctx, userID, hashedPassword); err != nil {
			return err
		}
		revoked, err := sessions.RevokeAll(ctx, userID)
		if err != nil {
			return err
		}
		ctxutil.GetLogger(ctx).InfoContext(ctx, "password_reset_completed",
			slog.Int64("user_id", userID),
			slog.Int64("sessions_revoked", revoked),
		)
		return nil
	}

	if service.unitOfWork != nil {
		err = service.unitOfWork.Run(ctx, apply)
	} else {
		err = apply(service.userRepository, service.sessionRepository)
	}
	if err != nil {
		return err
	}

	if err := service.resetTokenRepository.Delete(ctx, token); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "reset_token_delete_failed", slog.Any("error", err))
	}
	return nil
}

// # Helpers

// fingerprint binds the user agent and IP into the token for auditing.
func fingerprint(userAgent, ipAddress string) string {
	return strings.TrimSpace(userAgent + " " + ipAddress)
}

// scopeOf returns 0 for admins (all sessions) and the user ID otherwise.
func scopeOf(claims *sec.AuthClaims) int64 {
	if sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin) {
		return 0
	}
	return claims.UserID
}

// internalError is the fail-closed answer to storage failures during auth.
func internalError(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       apperr.CodeInternal,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
