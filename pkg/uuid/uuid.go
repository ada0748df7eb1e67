// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values.

Used for:

  - Session primary keys (sortable by creation time).
  - Request correlation ids.
  - The jti claim of issued tokens.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Parsing

// IsValid reports whether s is a canonical UUID string of any version.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
