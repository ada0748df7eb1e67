// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
//
// Keys hold the SHA-256 of the token, never the token itself.
type RedisResetTokenRepository struct {
	client redis.UniversalClient
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client redis.UniversalClient) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func resetKey(token string) string {
	return constants.RedisPrefixResetToken + sec.HashToken(token)
}

/*
Set stores a reset token with its associated userID and TTL.

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := repository.client.Set(ctx, resetKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a given token.

Returns:
  - int64: Owner of the token
  - error: apperr.ValidationError on field "token" if absent or expired
*/
func (repository *RedisResetTokenRepository) Get(ctx context.Context, token string) (int64, error) {
	value, err := repository.client.Get(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errResetTokenInvalid
		}
		return 0, fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_reset_token_corrupt: %w", err)
	}
	return userID, nil
}

// Delete removes the token from Redis.
func (repository *RedisResetTokenRepository) Delete(ctx context.Context, token string) error {
	if err := repository.client.Del(ctx, resetKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}

var errResetTokenInvalid = apperr.FieldInvalid(FieldToken, apperr.KindAuth, "Reset token is invalid or expired")
