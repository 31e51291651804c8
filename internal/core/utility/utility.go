// Copyright (c) 2026 BudCenter. All rights reserved.

// Package utility provides the housekeeping commands: '/ping', '/help',
// '/about' and the owner-only '/register'.
//
// It depends on the gateway only through small interfaces, so the discord
// package can hand itself in without an import cycle.
package utility

import (
	"context"
	"time"

	"github.com/budcenter/budbuddy/internal/platform/interaction"
)

// Latency reports the gateway heartbeat round trip. *discordgo.Session implements it.
type Latency interface {
	HeartbeatLatency() time.Duration
}

// Catalog lists every registered command, for '/help'.
type Catalog interface {
	Commands() []*interaction.Command
}

// CommandSyncer re-registers the slash commands with Discord.
type CommandSyncer interface {
	// SyncCommands overwrites the commands of guildID, or the global commands when
	// guildID is empty, and returns how many were registered.
	SyncCommands(ctx context.Context, guildID string) (int, error)
}

// Handler serves the utility commands.
type Handler struct {
	latency    Latency
	catalog    Catalog
	syncer     CommandSyncer
	devGuildID string

	now func() time.Time
}

func NewHandler(latency Latency, catalog Catalog, syncer CommandSyncer, devGuildID string) *Handler {
	return &Handler{
		latency:    latency,
		catalog:    catalog,
		syncer:     syncer,
		devGuildID: devGuildID,
		now:        time.Now,
	}
}
