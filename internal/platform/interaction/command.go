// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package interaction provides the command primitives shared by every feature module.

It plays the role an HTTP router's handler signature plays in a web service:
domain packages declare [Command] values with a [HandlerFunc], the discord package
dispatches gateway interactions to them, and replies flow back through a
[Responder]. Handlers never hold the gateway session, which keeps them testable
with the interactiontest recorder.

Main pieces:

  - Command / Component: declarations registered by feature modules.
  - Invocation: the parsed interaction (actor, qualified name, options, custom id).
  - Reply / Embed: message builders for chat replies.
*/
package interaction

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc handles one slash-command or message-component interaction.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// AutocompleteFunc returns suggestions for the focused option. It must not
// fail: an empty slice is a valid answer.
type AutocompleteFunc func(ctx context.Context, inv *Invocation, option, value string) []string

// Command is a slash command and its handlers.
type Command struct {
	// Definition is the payload registered with Discord.
	Definition *discordgo.ApplicationCommand

	// Category groups the command in '/help'.
	Category string

	// Hidden commands are left out of '/help' and its autocomplete.
	Hidden bool

	// OwnersOnly commands are refused for anyone outside the configured owners.
	OwnersOnly bool

	// Handler serves commands without subcommands.
	Handler HandlerFunc

	// Subcommands serves '/<name> <sub>' invocations, keyed by subcommand name.
	Subcommands map[string]HandlerFunc

	// Autocomplete serves options declared with Autocomplete: true.
	Autocomplete AutocompleteFunc
}

// Name returns the top-level command name.
func (c *Command) Name() string {
	return c.Definition.Name
}

// Resolve picks the handler for a qualified invocation name such as "puff take".
func (c *Command) Resolve(qualifiedName string) (HandlerFunc, bool) {
	if len(c.Subcommands) == 0 {
		return c.Handler, c.Handler != nil
	}

	_, sub, ok := strings.Cut(qualifiedName, " ")
	if !ok {
		return nil, false
	}

	handler, ok := c.Subcommands[sub]
	return handler, ok
}

// Component handles message-component interactions whose custom id starts
// with Prefix followed by [CustomIDSeparator].
type Component struct {
	Prefix  string
	Handler HandlerFunc
}

// Module is implemented by feature packages that contribute slash commands.
type Module interface {
	Commands() []*Command
}

// ComponentModule is implemented by feature packages that own buttons.
type ComponentModule interface {
	Components() []*Component
}

// # Custom IDs

// CustomIDSeparator joins the parts of a component custom id.
const CustomIDSeparator = ":"

// CustomID builds a component custom id from its parts.
func CustomID(parts ...string) string {
	return strings.Join(parts, CustomIDSeparator)
}

// SplitCustomID returns the parts of a component custom id.
func SplitCustomID(customID string) []string {
	return strings.Split(customID, CustomIDSeparator)
}

// # Option Builders

// StringOption declares a string option.
func StringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// IntegerOption declares an integer option.
func IntegerOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// Subcommand declares a subcommand option.
func Subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}
