// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user records: listing, lookup, creation, partial
update and soft deletion.

# Authorization

Listing and lookup need an authenticated caller. Creation and deletion are
admin-only. A user may update their own record; only admins may change
role, status or another user's record.

# Security

Passwords are hashed with bcrypt before they reach the store and
password_hash never leaves it: every read is projected onto
[schema.UsersTable.PublicColumns].
*/
package account

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// User is the public view of an account.
type User struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	Name          string       `json:"name"`
	EmailVerified bool         `json:"email_verified"`
	Role          sec.UserRole `json:"role"`
	Status        int          `json:"status"`
	IsDeleted     int          `json:"is_deleted"`
	CreatedDate   time.Time    `json:"created_date"`
	UpdatedDate   time.Time    `json:"updated_date"`
}

// CreateInput is the payload accepted by POST /users.
type CreateInput struct {
	Email         string  `json:"email" validate:"required,email,max=255"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Password      string  `json:"password" validate:"required,min=8,max=72"`
	Role          *string `json:"role" validate:"omitempty,oneof=user admin"`
	EmailVerified *bool   `json:"email_verified"`
}

// UpdateInput is the payload accepted by PATCH /users/{id}. Nil fields are
// left untouched.
type UpdateInput struct {
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	Password      *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role          *string `json:"role" validate:"omitempty,oneof=user admin"`
	EmailVerified *bool   `json:"email_verified"`
	Status        *int    `json:"status" validate:"omitempty,oneof=0 1"`
}

// privileged reports whether the input touches admin-only columns.
func (input UpdateInput) privileged() bool {
	return input.Role != nil || input.Status != nil || input.EmailVerified != nil
}

// # Record Mapping

func userFromRecord(record store.Record) *User {
	return &User{
		ID:            record.Int64(schema.Users.ID),
		Email:         record.String(schema.Users.Email),
		Name:          record.String(schema.Users.Name),
		EmailVerified: record.Bool(schema.Users.EmailVerified),
		Role:          sec.UserRole(record.String(schema.Users.Role)),
		Status:        int(record.Int64(schema.ColStatus)),
		IsDeleted:     int(record.Int64(schema.ColIsDeleted)),
		CreatedDate:   record.Time(schema.ColCreatedDate),
		UpdatedDate:   record.Time(schema.ColUpdatedDate),
	}
}

const (
	fieldPassword = "password"
	resource      = "User"
)
