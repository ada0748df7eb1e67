// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Roles lists every accepted role value, in the order used by validation tags.
var Roles = []UserRole{RoleUser, RoleAdmin}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
