// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// # Uniqueness Policies

const (
	// UniqueExcludeDeleted ignores soft-deleted rows, so a deleted email or slug can be reused.
	UniqueExcludeDeleted = "exclude_deleted"

	// UniqueIncludeDeleted counts soft-deleted rows as taken.
	UniqueIncludeDeleted = "include_deleted"
)

// # Configuration Schema

// Config holds all runtime configuration for the Folio API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing (HS256). Never logged.
	JWTSecret  string        `env:"JWT_SECRET,required,unset"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"2h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Password reset tokens stored in Redis
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"30m"`

	// Whether soft-deleted rows still claim unique values (exclude_deleted | include_deleted)
	UniquePolicy string `env:"UNIQUE_POLICY" envDefault:"exclude_deleted"`

	// Cron expression (with seconds) for purging expired sessions. Empty disables the job.
	SessionCleanupSchedule string `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"0 */15 * * * *"`

	// Cross-Origin Resource Sharing: comma-separated origins allowed on top of *.folio.app
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.UniquePolicy {
	case UniqueExcludeDeleted, UniqueIncludeDeleted:
	default:
		return fmt.Errorf("config: UNIQUE_POLICY must be %q or %q, got %q",
			UniqueExcludeDeleted, UniqueIncludeDeleted, c.UniquePolicy)
	}

	if c.BcryptCost < constants.MinBcryptCost {
		return fmt.Errorf("config: BCRYPT_COST must be at least %d", constants.MinBcryptCost)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}

	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 bytes")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsOrigin reports whether a browser origin may call the API.
func (c *Config) AllowsOrigin(origin string) bool {
	if strings.HasSuffix(origin, "."+constants.AuthIssuer) || strings.HasSuffix(origin, "//"+constants.AuthIssuer) {
		return true
	}
	for _, allowed := range c.ExtraOrigins {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}
