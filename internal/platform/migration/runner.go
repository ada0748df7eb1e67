// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. Migrations are read from
// the embedded [migrations.FS], so the API binary and the operator CLI always
// apply the schema they were built with.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/folio/migrations"
)

// Runner applies embedded migrations against one database.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// New opens a migration runner for dsn. Call [Runner.Close] when done.
func New(dsn string, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded source: %w", err)
	}

	// golang-migrate pgx/v5 driver expects "pgx5://" scheme.
	migrator, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = &migrateLogger{logger: logger}
	return &Runner{migrator: migrator, logger: logger}, nil
}

// RunUp applies all pending UP migrations.
func RunUp(dsn string, logger *slog.Logger) error {
	runner, err := New(dsn, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

// Up applies all pending migrations.
func (runner *Runner) Up() error {
	currentVersion, err := runner.cleanVersion()
	if err != nil {
		return err
	}

	runner.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := runner.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := runner.migrator.Version()
	runner.logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)
	return nil
}

// Down rolls back the given number of migrations.
func (runner *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migration: steps must be positive")
	}
	if _, err := runner.cleanVersion(); err != nil {
		return err
	}

	if err := runner.migrator.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration: down failed: %w", err)
	}

	runner.logger.Info("migration_rolled_back", slog.Int("steps", steps))
	return nil
}

// Version reports the applied version and whether the schema is dirty.
// A fresh database reports version 0.
func (runner *Runner) Version() (uint, bool, error) {
	version, dirty, err := runner.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the source and database handles.
func (runner *Runner) Close() {
	sourceError, dbError := runner.migrator.Close()
	if sourceError != nil {
		runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
	}
	if dbError != nil {
		runner.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
	}
}

// cleanVersion returns the current version, refusing to continue on a dirty schema.
func (runner *Runner) cleanVersion() (uint, error) {
	version, dirty, err := runner.Version()
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", version)
	}
	return version, nil
}

// convertToPgx5DSN ensures the DSN uses the pgx5:// scheme required by golang-migrate/v4.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
