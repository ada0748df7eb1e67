// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/internal/platform/migration"
)

func newMigrateCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Run the embedded database migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the applied version`,
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long: `Roll back applied migrations.

Examples:
  folioctl migrate down              # Roll back the last migration
  folioctl migrate down --steps 2    # Roll back two migrations`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withRunner(func(runner *migration.Runner) error {
				if err := runner.Down(steps); err != nil {
					return err
				}
				g.out.Success("Rolled back %d migration(s)", steps)
				return g.printVersion(runner)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return g.withRunner(func(runner *migration.Runner) error {
					if err := runner.Up(); err != nil {
						return err
					}
					g.out.Success("Schema is up to date")
					return g.printVersion(runner)
				})
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return g.withRunner(g.printVersion)
			},
		},
	)
	return cmd
}

func (g *globals) withRunner(fn func(*migration.Runner) error) error {
	if err := g.requireDatabase(); err != nil {
		return err
	}
	runner, err := migration.New(g.env.DatabaseURL, g.logger())
	if err != nil {
		return err
	}
	defer runner.Close()
	return fn(runner)
}

func (g *globals) printVersion(runner *migration.Runner) error {
	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	g.out.Field("version", version)
	if version == 0 {
		g.out.Muted("No migrations applied yet")
	}
	if dirty {
		g.out.Warning("Schema is dirty: fix the failed migration and force the version")
	}
	return nil
}
