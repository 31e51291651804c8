// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire bot.

It defines default timeouts, limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Timing: Interaction, startup and shutdown deadlines.
  - Limits: Result caps, autocomplete sizes, and rate limits.
  - Presentation: Embed colours and links shown in replies.
  - Storage: Schema names and Redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "budbuddy"
	AppVersion = "0.4.0"
)

// # Timing

const (
	// CommandTimeout is the deadline for a single command invocation, prompts included.
	CommandTimeout = 60 * time.Second

	// StatementTimeout bounds any single SQL statement.
	StatementTimeout = 10 * time.Second

	// ResetConfirmWindow is how long a '/puff reset' prompt waits for a button press.
	ResetConfirmWindow = 30 * time.Second

	// StartupTimeout bounds connecting to Postgres, Redis and the gateway.
	StartupTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight work may take during shutdown.
	ShutdownTimeout = 15 * time.Second

	// OpsReadHeaderTimeout guards the health/metrics server.
	OpsReadHeaderTimeout = 2 * time.Second

	// OpsRequestTimeout bounds any request to the health/metrics server.
	OpsRequestTimeout = 10 * time.Second

	// ReadinessCheckTimeout bounds a single dependency probe of '/ready'.
	ReadinessCheckTimeout = 2 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID = "X-Request-ID"
)

// # Limits

const (
	// SearchResultCap is the maximum number of strains listed by '/search'.
	SearchResultCap = 15

	// SuggestionFetchLimit caps each autocomplete snapshot.
	SuggestionFetchLimit = 100

	// AutocompleteChoiceLimit is Discord's maximum number of autocomplete choices.
	AutocompleteChoiceLimit = 25

	// LeaderboardSize is the number of users shown by '/puff leaderboard'.
	LeaderboardSize = 10

	// MaxFilterLength bounds free-text search options.
	MaxFilterLength = 100
)

// # Rate Limiting

const (
	// CommandRateLimitPerSecond is the sustained command rate allowed per user.
	CommandRateLimitPerSecond = 1.0

	// CommandRateLimitBurst is the maximum burst of commands per user.
	CommandRateLimitBurst = 5

	// RateLimitCleanupInterval is how often idle user limiters are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a user must be idle before its limiter is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Presentation

const (
	// ColorPurple is the default embed colour.
	ColorPurple = 0x9B59B6

	// ColorRed marks failures and empty results.
	ColorRed = 0xE74C3C

	// ColorGreen marks confirmations.
	ColorGreen = 0x2ECC71

	// ColorGrey marks expired or cancelled prompts.
	ColorGrey = 0x95A5A6

	SupportURL = "https://discord.gg/GjzwzDuD3S"
	GitHubURL  = "https://github.com/budcenter/budbuddy"
)

// # Categories

const (
	CategoryStrains = "Strains"
	CategoryUtility = "Utility"
)

// # Database Schemas

const (
	SchemaCannabis = "cannabis"
	SchemaBot      = "budbuddy"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixStrainDetail = "strain:detail:"

	// StrainDetailTTL is how long a rendered strain card stays cached.
	StrainDetailTTL = 10 * time.Minute
)
