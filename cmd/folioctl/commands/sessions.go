// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/internal/platform/constants"
	redisstore "github.com/taibuivan/folio/internal/platform/redis"
	"github.com/taibuivan/folio/internal/users/auth"
)

// purgeLockTTL bounds how long a manual purge may hold the job lock.
const purgeLockTTL = 2 * time.Minute

func newSessionsCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Soft-delete every expired session",
		Long: `Soft-delete every expired session now.

With --redis (or REDIS_URL) the purge takes the same lock as the scheduled
job, so it never overlaps with a running server's cleanup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			helper, pool, err := g.openHelper(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			sessions := auth.NewSessionRepository(helper)
			purge := func(ctx context.Context) (int64, error) {
				return sessions.PurgeExpired(ctx, time.Now().UTC())
			}

			if g.env.RedisURL == "" {
				purged, err := purge(ctx)
				if err != nil {
					return err
				}
				g.out.Success("Purged %d expired session(s)", purged)
				return nil
			}

			client, err := redisstore.NewClient(ctx, g.env.RedisURL, g.logger())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			var purged int64
			ran, err := redisstore.NewLocker(client).TryRun(ctx, constants.RedisLockSessionPurge, purgeLockTTL,
				func(ctx context.Context) error {
					purged, err = purge(ctx)
					return err
				})
			if err != nil {
				return err
			}
			if !ran {
				g.out.Warning("Another purge holds the lock; nothing done")
				return nil
			}

			g.out.Success("Purged %d expired session(s)", purged)
			return nil
		},
	})
	return cmd
}
