// Copyright (c) 2026 BudCenter. All rights reserved.

package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
)

// OwnerChecker reports whether a user may run owner-only commands.
type OwnerChecker interface {
	IsOwner(userID string) bool
}

// Router dispatches interactions to the registered feature modules.
//
// # Concurrency
//
// Register every module before the gateway opens; afterwards the router is
// read-only and safe for concurrent dispatch.
type Router struct {
	logger   *slog.Logger
	owners   OwnerChecker
	reporter *Reporter

	middlewares []Middleware
	commands    []*interaction.Command
	byName      map[string]*interaction.Command
	components  map[string]*interaction.Component
}

// NewRouter creates an empty router.
func NewRouter(logger *slog.Logger, owners OwnerChecker, reporter *Reporter) *Router {
	return &Router{
		logger:     logger,
		owners:     owners,
		reporter:   reporter,
		byName:     make(map[string]*interaction.Command),
		components: make(map[string]*interaction.Component),
	}
}

// Use appends middlewares. The first registered runs outermost.
func (router *Router) Use(middlewares ...Middleware) {
	router.middlewares = append(router.middlewares, middlewares...)
}

// Register adds the commands, and the components when provided, of each module.
func (router *Router) Register(modules ...interaction.Module) {
	for _, module := range modules {
		for _, command := range module.Commands() {
			if _, exists := router.byName[command.Name()]; exists {
				panic(fmt.Sprintf("discord: duplicate command %q", command.Name()))
			}
			router.byName[command.Name()] = command
			router.commands = append(router.commands, command)
		}

		if owner, ok := module.(interaction.ComponentModule); ok {
			for _, component := range owner.Components() {
				router.components[component.Prefix] = component
			}
		}
	}
}

// Commands returns every registered command in registration order.
func (router *Router) Commands() []*interaction.Command {
	return router.commands
}

// Definitions returns the payloads to register with Discord.
func (router *Router) Definitions() []*discordgo.ApplicationCommand {
	definitions := make([]*discordgo.ApplicationCommand, 0, len(router.commands))
	for _, command := range router.commands {
		definitions = append(definitions, command.Definition)
	}
	return definitions
}

/*
Dispatch routes one interaction and answers any error it produces.

Parameters:
  - ctx: context.Context (the bot's root context)
  - inv: *interaction.Invocation
*/
func (router *Router) Dispatch(ctx context.Context, inv *interaction.Invocation) {
	if inv.Interaction.Type == discordgo.InteractionApplicationCommandAutocomplete {
		router.autocomplete(ctx, inv)
		return
	}

	handler := chain(router.resolve, router.middlewares...)
	// Report inside the chain so the error reply sees the trace id and interaction logger.
	reporting := func(ctx context.Context, inv *interaction.Invocation) error {
		if err := handler(ctx, inv); err != nil {
			router.reporter.Report(ctx, inv, err)
			return err
		}
		return nil
	}

	_ = chain(reporting, Trace(), StructuredLogger(router.logger))(ctx, inv)
}

// resolve finds and runs the handler of a command or component interaction.
func (router *Router) resolve(ctx context.Context, inv *interaction.Invocation) error {
	switch inv.Interaction.Type {
	case discordgo.InteractionApplicationCommand:
		topLevel, _, _ := strings.Cut(inv.Name, " ")
		command, ok := router.byName[topLevel]
		if !ok {
			return apperr.NotFound("Command")
		}
		if command.OwnersOnly && !router.owners.IsOwner(inv.Actor.UserID) {
			return apperr.Forbidden("This command is restricted to the bot owners")
		}

		handler, ok := command.Resolve(inv.Name)
		if !ok {
			return apperr.NotFound("Command")
		}
		return handler(ctx, inv)

	case discordgo.InteractionMessageComponent:
		component, ok := router.components[inv.Name]
		if !ok {
			ctxutil.GetLogger(ctx).Warn("component_unrouted", slog.String("custom_id", inv.CustomID))
			return inv.Acknowledge(ctx)
		}
		return component.Handler(ctx, inv)
	}

	return nil
}

// autocomplete answers the focused option. Failures yield no suggestions, never an error reply.
func (router *Router) autocomplete(ctx context.Context, inv *interaction.Invocation) {
	values := []string{}

	topLevel, _, _ := strings.Cut(inv.Name, " ")
	command, ok := router.byName[topLevel]
	if ok && command.Autocomplete != nil {
		if option, typed, focused := inv.Focused(); focused {
			values = command.Autocomplete(ctx, inv, option, typed)
		}
	}

	if len(values) > constants.AutocompleteChoiceLimit {
		values = values[:constants.AutocompleteChoiceLimit]
	}

	if err := inv.Suggest(ctx, values); err != nil {
		router.logger.Warn("autocomplete_reply_failed",
			slog.String("command", inv.Name),
			slog.Any("error", err),
		)
	}
}
