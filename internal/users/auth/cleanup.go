// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// Locker grants a named cross-instance lock for the duration of fn.
type Locker interface {
	TryRun(ctx context.Context, name string, ttl time.Duration, fn func(context.Context) error) (bool, error)
}

// SessionCleaner purges expired sessions on a cron schedule.
//
// Every instance schedules the job; the lock lets only one of them run a
// given tick.
type SessionCleaner struct {
	service *Service
	locker  Locker
	logger  *slog.Logger
	cron    *cron.Cron
}

// NewSessionCleaner creates a cleaner. A nil locker runs every tick locally.
func NewSessionCleaner(service *Service, locker Locker, logger *slog.Logger) *SessionCleaner {
	return &SessionCleaner{
		service: service,
		locker:  locker,
		logger:  logger,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the purge with a six-field (seconds-first) cron spec.
// An empty spec disables the job.
func (cleaner *SessionCleaner) Start(ctx context.Context, spec string) error {
	if spec == "" {
		cleaner.logger.Info("session_cleanup_disabled")
		return nil
	}

	_, err := cleaner.cron.AddFunc(spec, func() {
		if _, err := cleaner.RunOnce(ctx); err != nil {
			cleaner.logger.ErrorContext(ctx, "session_cleanup_failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("session_cleanup_schedule_invalid: %w", err)
	}

	cleaner.cron.Start()
	cleaner.logger.Info("session_cleanup_scheduled", slog.String("spec", spec))
	return nil
}

// Stop halts scheduling and waits for a running purge to finish.
func (cleaner *SessionCleaner) Stop() {
	<-cleaner.cron.Stop().Done()
}

// RunOnce purges expired sessions now, under the lock when one is configured.
//
// The count is -1 when another instance held the lock.
func (cleaner *SessionCleaner) RunOnce(ctx context.Context) (int64, error) {
	var purged int64
	purge := func(ctx context.Context) error {
		n, err := cleaner.service.PurgeExpiredSessions(ctx)
		purged = n
		return err
	}

	if cleaner.locker == nil {
		if err := purge(ctx); err != nil {
			return 0, err
		}
	} else {
		acquired, err := cleaner.locker.TryRun(ctx, constants.RedisLockSessionPurge, purgeLockTTL, purge)
		if err != nil {
			return 0, err
		}
		if !acquired {
			cleaner.logger.DebugContext(ctx, "session_cleanup_skipped_lock_held")
			return -1, nil
		}
	}

	cleaner.logger.InfoContext(ctx, "session_cleanup_finished", slog.Int64("purged", purged))
	return purged, nil
}
