// Copyright (c) 2026 BudCenter. All rights reserved.

package interactiontest

import (
	"github.com/bwmarrin/discordgo"
)

// Actor identifies the synthetic user, guild and channel of a test interaction.
type Actor struct {
	UserID    string
	GuildID   string
	ChannelID string
}

// DefaultActor is used when a test does not care who invoked the command.
var DefaultActor = Actor{UserID: "1001", GuildID: "2001", ChannelID: "3001"}

// Command builds a slash-command interaction.
func Command(actor Actor, name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	interaction := base(actor, discordgo.InteractionApplicationCommand)
	interaction.Data = discordgo.ApplicationCommandInteractionData{
		Name:    name,
		Options: options,
	}
	return interaction
}

// Autocomplete builds an autocomplete interaction with one focused string option.
func Autocomplete(actor Actor, name, option, typed string, others ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	focused := String(option, typed)
	focused.Focused = true

	interaction := base(actor, discordgo.InteractionApplicationCommandAutocomplete)
	interaction.Data = discordgo.ApplicationCommandInteractionData{
		Name:    name,
		Options: append([]*discordgo.ApplicationCommandInteractionDataOption{focused}, others...),
	}
	return interaction
}

// Component builds a button-press interaction.
func Component(actor Actor, customID string) *discordgo.Interaction {
	interaction := base(actor, discordgo.InteractionMessageComponent)
	interaction.Data = discordgo.MessageComponentInteractionData{
		CustomID:      customID,
		ComponentType: discordgo.ButtonComponent,
	}
	return interaction
}

// String builds a string option value.
func String(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

// Int builds an integer option value. Gateway JSON decodes numbers as float64.
func Int(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

// Sub builds a subcommand option wrapping its own options.
func Sub(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func base(actor Actor, kind discordgo.InteractionType) *discordgo.Interaction {
	interaction := &discordgo.Interaction{
		ID:        "interaction-" + actor.UserID,
		Type:      kind,
		GuildID:   actor.GuildID,
		ChannelID: actor.ChannelID,
	}

	user := &discordgo.User{ID: actor.UserID, Username: "user" + actor.UserID}
	if actor.GuildID != "" {
		interaction.Member = &discordgo.Member{User: user}
	} else {
		interaction.User = user
	}
	return interaction
}
