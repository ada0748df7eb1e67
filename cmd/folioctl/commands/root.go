// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commands holds the folioctl command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/cmd/folioctl/output"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/database/query"
	"github.com/taibuivan/folio/internal/platform/database/store"
	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
)

// environment is the subset of the server configuration folioctl reads.
type environment struct {
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL"`
	BcryptCost   int    `env:"BCRYPT_COST"   envDefault:"10"`
	UniquePolicy string `env:"UNIQUE_POLICY" envDefault:"exclude_deleted"`
}

// globals carries the persistent flags shared by every subcommand.
type globals struct {
	env     environment
	verbose bool
	out     *output.Printer
}

// NewRootCommand builds the folioctl command tree. Flags default to the
// same environment variables the API server reads.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	if err := env.Parse(&g.env); err != nil {
		g.env.BcryptCost = constants.MinBcryptCost
		g.env.UniquePolicy = config.UniqueExcludeDeleted
	}

	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Folio operator CLI",
		Long: `folioctl manages a Folio deployment.

Commands:
  migrate   - Apply, roll back or inspect schema migrations
  user      - Bootstrap accounts (e.g. the first admin)
  sessions  - Session maintenance`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			g.out = output.New(cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.env.DatabaseURL, "db", g.env.DatabaseURL, "PostgreSQL URL (default $DATABASE_URL)")
	flags.StringVar(&g.env.RedisURL, "redis", g.env.RedisURL, "Redis URL for job locks (default $REDIS_URL)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newMigrateCommand(g),
		newUserCommand(g),
		newSessionsCommand(g),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		output.New(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

// logger writes to stderr with -v and discards otherwise.
func (g *globals) logger() *slog.Logger {
	if !g.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (g *globals) requireDatabase() error {
	if g.env.DatabaseURL == "" {
		return fmt.Errorf("database URL is required: pass --db or set DATABASE_URL")
	}
	return nil
}

// openHelper connects to Postgres and returns a query helper over it.
func (g *globals) openHelper(ctx context.Context) (*query.Helper, *pgxpool.Pool, error) {
	if err := g.requireDatabase(); err != nil {
		return nil, nil, err
	}
	pool, err := pgstore.NewPool(ctx, g.env.DatabaseURL, g.logger())
	if err != nil {
		return nil, nil, err
	}
	return query.NewHelper(store.NewPostgresStore(pool), g.env.UniquePolicy), pool, nil
}
