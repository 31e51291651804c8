// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present so development setups need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, gateway) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the BudBuddy bot.
type Config struct {

	// Runtime settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Discord gateway
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	// DevGuildID is the guild used by '/register scope:guild'.
	DevGuildID string `env:"DEV_GUILD_ID"`

	// ErrorChannelID receives diagnostic embeds for unexpected failures.
	ErrorChannelID string `env:"ERROR_CHANNEL_ID"`

	// SyncOnStart registers the slash commands once the gateway is ready:
	// to DevGuildID in development, globally otherwise.
	SyncOnStart bool `env:"SYNC_COMMANDS_ON_START" envDefault:"true"`

	// OwnerIDs may run owner-only commands.
	OwnerIDs []string `env:"OWNER_IDS" envSeparator:","`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the strain card cache.
	RedisURL string `env:"REDIS_URL"`

	// OpsPort serves health probes and metrics.
	OpsPort string `env:"OPS_PORT" envDefault:"8081"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal production case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the bot is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the bot is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsOwner reports whether the Discord user may run owner-only commands.
func (c *Config) IsOwner(userID string) bool {
	return slices.Contains(c.OwnerIDs, userID)
}

// StartupSyncGuild returns where commands are registered at startup; empty means globally.
func (c *Config) StartupSyncGuild() string {
	if c.IsDevelopment() {
		return c.DevGuildID
	}
	return ""
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
