// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/folio/internal/platform/sec"
)

func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse", 10)
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
}

func TestHashPassword_RaisesLowCost(t *testing.T) {
	hash, err := sec.HashPassword("secret", 4)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 10)
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, sec.HashToken(first), 64)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
}
