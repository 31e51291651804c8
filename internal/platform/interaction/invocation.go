// Copyright (c) 2026 BudCenter. All rights reserved.

package interaction

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
)

// Responder delivers the replies of a single interaction.
type Responder interface {
	// Respond sends the initial interaction response.
	Respond(ctx context.Context, response *discordgo.InteractionResponse) error

	// Edit modifies the original interaction response.
	Edit(ctx context.Context, edit *discordgo.WebhookEdit) error
}

// Invocation is a parsed interaction handed to a [HandlerFunc].
//
// # Concurrency
//
// An Invocation belongs to the goroutine handling its interaction.
type Invocation struct {
	// Interaction is the raw gateway payload.
	Interaction *discordgo.Interaction

	// Responder sends replies for this interaction.
	Responder Responder

	// Actor identifies the invoking user, guild and channel.
	Actor ctxutil.Actor

	// Name is the qualified command name ("strain", "puff take").
	// For component interactions it is the custom id prefix.
	Name string

	// CustomID is set for message-component interactions.
	CustomID string

	options   map[string]*discordgo.ApplicationCommandInteractionDataOption
	responded atomic.Bool
}

// NewInvocation parses an interaction into an [Invocation].
func NewInvocation(interaction *discordgo.Interaction, responder Responder) *Invocation {
	inv := &Invocation{
		Interaction: interaction,
		Responder:   responder,
		Actor: ctxutil.Actor{
			UserID:    userID(interaction),
			GuildID:   interaction.GuildID,
			ChannelID: interaction.ChannelID,
		},
		options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		data := interaction.ApplicationCommandData()
		inv.Name = data.Name
		options := data.Options

		// Descend into subcommand groups and subcommands so options are always leaves.
		for len(options) == 1 && isSubcommand(options[0]) {
			inv.Name += " " + options[0].Name
			options = options[0].Options
		}

		for _, option := range options {
			inv.options[option.Name] = option
		}

	case discordgo.InteractionMessageComponent:
		inv.CustomID = interaction.MessageComponentData().CustomID
		inv.Name = SplitCustomID(inv.CustomID)[0]
	}

	return inv
}

// userID returns the invoking user for guild and direct-message interactions.
func userID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return ""
}

func isSubcommand(option *discordgo.ApplicationCommandInteractionDataOption) bool {
	return option.Type == discordgo.ApplicationCommandOptionSubCommand ||
		option.Type == discordgo.ApplicationCommandOptionSubCommandGroup
}

// # Options

// String returns a string option, or nil when it is absent or blank.
func (inv *Invocation) String(name string) *string {
	option, ok := inv.options[name]
	if !ok || option.Type != discordgo.ApplicationCommandOptionString {
		return nil
	}

	value := strings.TrimSpace(option.StringValue())
	if value == "" {
		return nil
	}
	return &value
}

// Int returns an integer option and whether it was supplied.
func (inv *Invocation) Int(name string) (int64, bool) {
	option, ok := inv.options[name]
	if !ok || option.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return option.IntValue(), true
}

// Focused returns the option being typed during an autocomplete interaction.
func (inv *Invocation) Focused() (name, value string, ok bool) {
	for _, option := range inv.options {
		if option.Focused {
			raw, _ := option.Value.(string)
			return option.Name, raw, true
		}
	}
	return "", "", false
}

// # Replies

// Responded reports whether the initial response was sent. After that, only
// [Invocation.EditReply] can change what the user sees.
func (inv *Invocation) Responded() bool {
	return inv.responded.Load()
}

func (inv *Invocation) respond(ctx context.Context, response *discordgo.InteractionResponse) error {
	if err := inv.Responder.Respond(ctx, response); err != nil {
		return err
	}
	inv.responded.Store(true)
	return nil
}

// Reply sends a message as the initial response.
func (inv *Invocation) Reply(ctx context.Context, reply Reply) error {
	return inv.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: reply.responseData(),
	})
}

// EditReply replaces the original response.
func (inv *Invocation) EditReply(ctx context.Context, reply Reply) error {
	return inv.Responder.Edit(ctx, reply.webhookEdit())
}

// Update replaces the message a component belongs to, as the component's response.
func (inv *Invocation) Update(ctx context.Context, reply Reply) error {
	return inv.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: reply.responseData(),
	})
}

// Acknowledge answers a component interaction without changing anything.
func (inv *Invocation) Acknowledge(ctx context.Context) error {
	return inv.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// Suggest answers an autocomplete interaction.
func (inv *Invocation) Suggest(ctx context.Context, values []string) error {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, value := range values {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: value, Value: value})
	}

	return inv.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}
