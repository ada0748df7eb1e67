// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// MinPasswordLength applies to every password set through this package.
	MinPasswordLength = 8

	// purgeLockTTL bounds how long one instance may hold the purge lock.
	purgeLockTTL = 2 * time.Minute
)

// # Boundary Messages

const (
	MsgNoToken        = "No token provided"
	MsgInvalidToken   = "Invalid token"
	MsgSessionRevoked = "Session revoked"
	MsgSessionExpired = "Session expired"
	MsgInternal       = "Internal error"

	MsgEmailNotFound   = "Email not found"
	MsgInvalidPassword = "Invalid password"
	MsgAccountInactive = "Account is inactive"
)
