// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Locker hands out short-lived distributed mutexes backed by Redis.
type Locker struct {
	sync *redsync.Redsync
}

// NewLocker builds a [Locker] on top of an existing client.
func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{sync: redsync.New(goredis.NewPool(client))}
}

// TryRun executes fn while holding the named lock.
//
// It makes a single attempt: if another holder owns the lock, fn is skipped
// and TryRun reports false without error.
func (locker *Locker) TryRun(ctx context.Context, name string, ttl time.Duration, fn func(context.Context) error) (bool, error) {
	mutex := locker.sync.NewMutex(name,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return false, nil
		}
		return false, fmt.Errorf("redis: lock %s failed: %w", name, err)
	}

	defer func() { _, _ = mutex.UnlockContext(context.WithoutCancel(ctx)) }()

	return true, fn(ctx)
}
