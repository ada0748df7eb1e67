// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements login, token verification and session management.

# Session Lifecycle

A login inserts one session row bound to the issued token:

	ACTIVE --logout-->  REVOKED   (status = 0)
	ACTIVE --refresh--> ACTIVE    (same row, new token and expiry)
	ACTIVE --time-->    EXPIRED   (expires_date < now, decided at verification)

Expired rows are soft-deleted by a scheduled purge.
*/
package auth

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Domain Entities

// User is the authentication view of an account.
type User struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	Name          string       `json:"name"`
	PasswordHash  string       `json:"-"`
	EmailVerified bool         `json:"email_verified"`
	Role          sec.UserRole `json:"role"`
	Status        int          `json:"status"`
	CreatedDate   time.Time    `json:"created_date"`
	UpdatedDate   time.Time    `json:"updated_date"`
}

// Active reports whether the account may log in.
func (u *User) Active() bool {
	return u.Status == 1
}

// Session is one login, bound to the hash of its current token.
type Session struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	TokenHash   string    `json:"-"`
	Devices     string    `json:"devices"`
	IPAddress   string    `json:"ip_address"`
	ExpiresDate time.Time `json:"expires_date"`
	Status      int       `json:"status"`
	IsDeleted   int       `json:"is_deleted"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

// Revoked reports whether the session was logged out or deleted.
func (s *Session) Revoked() bool {
	return s.Status != 1 || s.IsDeleted != 0
}

// Expired reports whether the session window has closed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresDate)
}

// # Record Mapping

func userFromRecord(record store.Record) *User {
	return &User{
		ID:            record.Int64(schema.Users.ID),
		Email:         record.String(schema.Users.Email),
		Name:          record.String(schema.Users.Name),
		PasswordHash:  record.String(schema.Users.PasswordHash),
		EmailVerified: record.Bool(schema.Users.EmailVerified),
		Role:          sec.UserRole(record.String(schema.Users.Role)),
		Status:        int(record.Int64(schema.ColStatus)),
		CreatedDate:   record.Time(schema.ColCreatedDate),
		UpdatedDate:   record.Time(schema.ColUpdatedDate),
	}
}

func sessionFromRecord(record store.Record) *Session {
	return &Session{
		ID:          record.String(schema.Sessions.ID),
		UserID:      record.Int64(schema.Sessions.UserID),
		TokenHash:   record.String(schema.Sessions.Token),
		Devices:     record.String(schema.Sessions.Devices),
		IPAddress:   record.String(schema.Sessions.IPAddress),
		ExpiresDate: record.Time(schema.Sessions.ExpiresDate),
		Status:      int(record.Int64(schema.ColStatus)),
		IsDeleted:   int(record.Int64(schema.ColIsDeleted)),
		CreatedDate: record.Time(schema.ColCreatedDate),
		UpdatedDate: record.Time(schema.ColUpdatedDate),
	}
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)
