// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// Costs below [constants.MinBcryptCost] are raised to the minimum.
func HashPassword(plainTextPassword string, cost int) (string, error) {
	if cost < constants.MinBcryptCost {
		cost = constants.MinBcryptCost
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
