// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the API to Redis, which holds the state that has to
expire on its own: password-reset tokens and the lock that keeps the
expired-session purge on one instance at a time (see [Locker]).
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pool sizing and timeouts applied when REDIS_URL leaves them unset.
// Reset tokens and the purge lock are low volume, so the pool stays small.
const (
	poolSize     = 10
	minIdleConns = 2
	maxIdleConns = 5
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient connects to redisURL and pings it before handing the client out.
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_parse_url_failed: %w", err)
	}
	withDefaults(options)

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// withDefaults fills pool and timeout settings the URL query did not set,
// e.g. redis://host:6379/0?pool_size=50 keeps its 50.
func withDefaults(options *redis.Options) {
	if options.PoolSize == 0 {
		options.PoolSize = poolSize
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = minIdleConns
	}
	if options.MaxIdleConns == 0 {
		options.MaxIdleConns = maxIdleConns
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = dialTimeout
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = ioTimeout
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = ioTimeout
	}
}

// Ping checks the connection within pingTimeout. The readiness probe uses it.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}
	return nil
}
