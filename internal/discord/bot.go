// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package discord connects BudBuddy to the Discord gateway.

It is the composition root for interactions, in the role an HTTP server package
plays for a web service: it owns the gateway session, registers the slash
commands, runs the middleware chain around every interaction, and answers
errors through a single [Reporter].

Flow:

  - [NewSession] configures the gateway session (guild intent only).
  - [Router] holds the commands and components of the feature modules.
  - [Bot] opens the session, syncs commands once ready, and hands every
    interaction to the router on its own goroutine.
*/
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
)

// ErrNotReady is returned while the gateway session has not received READY.
var ErrNotReady = errors.New("discord: gateway not ready")

// NewSession creates a gateway session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: failed to create session: %w", err)
	}

	// Slash commands need no privileged intents.
	session.Identify.Intents = discordgo.IntentsGuilds
	session.SyncEvents = false
	session.UserAgent = fmt.Sprintf("DiscordBot (%s, %s)", constants.GitHubURL, constants.AppVersion)

	return session, nil
}

// Bot runs the gateway session.
type Bot struct {
	session *discordgo.Session
	router  *Router
	logger  *slog.Logger

	// syncOnReady registers the commands on the first READY, to syncGuildID
	// or globally when it is empty.
	syncOnReady bool
	syncGuildID string
	syncOnce    sync.Once

	ready         atomic.Bool
	applicationID atomic.Value

	rootCtx  context.Context
	inflight sync.WaitGroup
}

// NewBot binds a router to a session.
func NewBot(session *discordgo.Session, router *Router, logger *slog.Logger) *Bot {
	return &Bot{
		session: session,
		router:  router,
		logger:  logger,
	}
}

// SyncOnReady makes the first READY register the commands, to guildID or
// globally when it is empty. Call it before [Bot.Open].
func (bot *Bot) SyncOnReady(guildID string) {
	bot.syncOnReady = true
	bot.syncGuildID = guildID
}

/*
Open connects to the gateway.

Parameters:
  - ctx: context.Context (root context; every interaction derives from it)

Returns:
  - error: Gateway connection failures
*/
func (bot *Bot) Open(ctx context.Context) error {
	bot.rootCtx = ctx

	bot.session.AddHandler(bot.onReady)
	bot.session.AddHandler(bot.onInteraction)

	if err := bot.session.Open(); err != nil {
		return fmt.Errorf("discord: failed to open gateway: %w", err)
	}
	return nil
}

// Shutdown closes the gateway and waits for in-flight interactions until ctx ends.
func (bot *Bot) Shutdown(ctx context.Context) error {
	bot.ready.Store(false)
	closeErr := bot.session.Close()

	done := make(chan struct{})
	go func() {
		bot.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		bot.logger.Info("discord_interactions_drained")
	case <-ctx.Done():
		bot.logger.Warn("discord_interactions_abandoned", slog.Any("error", ctx.Err()))
	}

	return closeErr
}

// Ready reports whether the gateway session is usable.
func (bot *Bot) Ready() bool {
	return bot.ready.Load()
}

// Check implements the readiness probe of the ops server.
func (bot *Bot) Check(context.Context) error {
	if !bot.Ready() {
		return ErrNotReady
	}
	return nil
}

// HeartbeatLatency reports the last gateway heartbeat round trip.
func (bot *Bot) HeartbeatLatency() time.Duration {
	return bot.session.HeartbeatLatency()
}

/*
SyncCommands bulk-overwrites the registered slash commands.

Parameters:
  - ctx: context.Context
  - guildID: string (empty for global commands)

Returns:
  - int: Number of commands Discord now holds
  - error: ErrNotReady before READY, or REST failures
*/
func (bot *Bot) SyncCommands(ctx context.Context, guildID string) (int, error) {
	applicationID, _ := bot.applicationID.Load().(string)
	if applicationID == "" {
		return 0, ErrNotReady
	}

	registered, err := bot.session.ApplicationCommandBulkOverwrite(applicationID, guildID, bot.router.Definitions(), discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("discord: command sync failed: %w", err)
	}

	bot.logger.Info("discord_commands_synced",
		slog.String("guild_id", guildID),
		slog.Int("count", len(registered)),
	)
	return len(registered), nil
}

// # Gateway Events

func (bot *Bot) onReady(_ *discordgo.Session, event *discordgo.Ready) {
	if event.Application != nil {
		bot.applicationID.Store(event.Application.ID)
	} else if event.User != nil {
		bot.applicationID.Store(event.User.ID)
	}
	bot.ready.Store(true)

	bot.logger.Info("discord_ready",
		slog.String("session_id", event.SessionID),
		slog.Int("guilds", len(event.Guilds)),
	)

	if !bot.syncOnReady {
		return
	}

	bot.syncOnce.Do(func() {
		go func() {
			ctx, cancel := context.WithTimeout(bot.rootCtx, constants.StartupTimeout)
			defer cancel()

			if _, err := bot.SyncCommands(ctx, bot.syncGuildID); err != nil {
				bot.logger.Error("discord_commands_sync_failed", slog.Any("error", err))
			}
		}()
	})
}

func (bot *Bot) onInteraction(session *discordgo.Session, event *discordgo.InteractionCreate) {
	bot.inflight.Add(1)
	defer bot.inflight.Done()

	inv := interaction.NewInvocation(event.Interaction, interaction.NewSessionResponder(session, event.Interaction))
	bot.router.Dispatch(bot.rootCtx, inv)
}
