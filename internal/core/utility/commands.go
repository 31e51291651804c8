// Copyright (c) 2026 BudCenter. All rights reserved.

package utility

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
	"github.com/budcenter/budbuddy/internal/platform/validate"
)

// Register scopes.
const (
	ScopeGlobal = "global"
	ScopeGuild  = "guild"
)

// Commands implements [interaction.Module].
func (handler *Handler) Commands() []*interaction.Command {
	helpOption := interaction.StringOption("command", "Command to get help for", false)
	helpOption.Autocomplete = true

	scopeOption := interaction.StringOption("scope", "Where to register the commands", true)
	scopeOption.Choices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Global", Value: ScopeGlobal},
		{Name: "Development guild", Value: ScopeGuild},
	}

	return []*interaction.Command{
		{
			Definition: &discordgo.ApplicationCommand{Name: "ping", Description: "Check bot latency"},
			Category:   constants.CategoryUtility,
			Handler:    handler.ping,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "help",
				Description: "Show help message",
				Options:     []*discordgo.ApplicationCommandOption{helpOption},
			},
			Category:     constants.CategoryUtility,
			Handler:      handler.help,
			Autocomplete: handler.autocompleteCommands,
		},
		{
			Definition: &discordgo.ApplicationCommand{Name: "about", Description: "About BudBuddy"},
			Category:   constants.CategoryUtility,
			Handler:    handler.about,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "register",
				Description: "Re-register slash commands",
				Options:     []*discordgo.ApplicationCommandOption{scopeOption},
			},
			Category:   constants.CategoryUtility,
			Hidden:     true,
			OwnersOnly: true,
			Handler:    handler.register,
		},
	}
}

// # Ping

func (handler *Handler) ping(ctx context.Context, inv *interaction.Invocation) error {
	started := handler.now()

	if err := inv.Reply(ctx, interaction.Reply{Content: "⏳ Loading..."}); err != nil {
		return err
	}

	roundTrip := handler.now().Sub(started)
	content := fmt.Sprintf("Current Latency: %dms\nGateway Heartbeat: %dms",
		roundTrip.Milliseconds(),
		handler.latency.HeartbeatLatency().Milliseconds(),
	)

	return inv.EditReply(ctx, interaction.Reply{Content: content})
}

// # Help

func (handler *Handler) help(ctx context.Context, inv *interaction.Invocation) error {
	if name := inv.String("command"); name != nil {
		return inv.Reply(ctx, handler.commandHelp(*name))
	}

	embed := interaction.NewEmbed("BudBuddy commands").
		Footer("Type /help <command> for more info on a command.")

	byCategory := map[string][]string{}
	var categories []string
	for _, entry := range handler.visibleEntries() {
		if _, seen := byCategory[entry.category]; !seen {
			categories = append(categories, entry.category)
		}
		byCategory[entry.category] = append(byCategory[entry.category],
			fmt.Sprintf("`/%s`: %s", entry.name, entry.description))
	}

	for _, category := range categories {
		embed.Field(category, strings.Join(byCategory[category], "\n"), false)
	}

	reply := interaction.EmbedReply(embed)
	reply.Ephemeral = true
	return inv.Reply(ctx, reply)
}

func (handler *Handler) commandHelp(name string) interaction.Reply {
	wanted := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "/")

	for _, entry := range handler.visibleEntries() {
		if entry.name != wanted {
			continue
		}

		embed := interaction.NewEmbed("/" + entry.name).Description(entry.description)
		for _, option := range entry.options {
			label := option.Name
			if option.Required {
				label += " (required)"
			}
			embed.Field(label, option.Description, false)
		}

		reply := interaction.EmbedReply(embed)
		reply.Ephemeral = true
		return reply
	}

	reply := interaction.ErrorReply("Unknown command", fmt.Sprintf("There is no command named `%s`.", name))
	reply.Ephemeral = true
	return reply
}

func (handler *Handler) autocompleteCommands(_ context.Context, _ *interaction.Invocation, _ string, value string) []string {
	prefix := strings.ToLower(strings.TrimPrefix(value, "/"))

	names := []string{}
	for _, entry := range handler.visibleEntries() {
		if strings.HasPrefix(entry.name, prefix) {
			names = append(names, entry.name)
		}
	}
	return names
}

// helpEntry is a command or subcommand as listed by '/help'.
type helpEntry struct {
	category    string
	name        string
	description string
	options     []*discordgo.ApplicationCommandOption
}

// visibleEntries flattens the catalog into qualified names, skipping hidden and owner-only commands.
func (handler *Handler) visibleEntries() []helpEntry {
	var entries []helpEntry

	for _, command := range handler.catalog.Commands() {
		if command.Hidden || command.OwnersOnly {
			continue
		}

		definition := command.Definition
		entries = append(entries, helpEntry{
			category:    command.Category,
			name:        definition.Name,
			description: definition.Description,
			options:     leafOptions(definition.Options),
		})

		for _, option := range definition.Options {
			if option.Type != discordgo.ApplicationCommandOptionSubCommand {
				continue
			}
			entries = append(entries, helpEntry{
				category:    command.Category,
				name:        definition.Name + " " + option.Name,
				description: option.Description,
				options:     option.Options,
			})
		}
	}

	slices.SortStableFunc(entries, func(a, b helpEntry) int {
		if c := strings.Compare(a.category, b.category); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	return entries
}

func leafOptions(options []*discordgo.ApplicationCommandOption) []*discordgo.ApplicationCommandOption {
	var leaves []*discordgo.ApplicationCommandOption
	for _, option := range options {
		if option.Type != discordgo.ApplicationCommandOptionSubCommand &&
			option.Type != discordgo.ApplicationCommandOptionSubCommandGroup {
			leaves = append(leaves, option)
		}
	}
	return leaves
}

// # About

func (handler *Handler) about(ctx context.Context, inv *interaction.Invocation) error {
	embed := interaction.NewEmbed("Hi, I'm BudBuddy").
		Description("The official discord bot for BudCenter services.\n\nTry `/help` for more commands").
		Footer("v" + constants.AppVersion)

	return inv.Reply(ctx, interaction.Reply{
		Embeds: []*discordgo.MessageEmbed{embed.Build()},
		Components: interaction.Buttons(
			interaction.LinkButton("Support", constants.SupportURL, "❓"),
			interaction.LinkButton("GitHub", constants.GitHubURL, ""),
		),
		Ephemeral: true,
	})
}

// # Register

func (handler *Handler) register(ctx context.Context, inv *interaction.Invocation) error {
	scope := ScopeGlobal
	if raw := inv.String("scope"); raw != nil {
		scope = *raw
	}

	validator := &validate.Validator{}
	validator.
		OneOf("scope", scope, ScopeGlobal, ScopeGuild).
		Custom("scope", scope == ScopeGuild && handler.devGuildID == "", "DEV_GUILD_ID is not configured")
	if err := validator.Err(); err != nil {
		return err
	}

	guildID := ""
	target := "globally"
	if scope == ScopeGuild {
		guildID = handler.devGuildID
		target = "to the development guild"
	}

	// Bulk overwrites can outlast the initial response deadline.
	if err := inv.Reply(ctx, interaction.Reply{Content: "⏳ Registering commands...", Ephemeral: true}); err != nil {
		return err
	}

	count, err := handler.syncer.SyncCommands(ctx, guildID)
	if err != nil {
		return err
	}

	return inv.EditReply(ctx, interaction.Reply{
		Content: fmt.Sprintf("Registered %d commands %s.", count, target),
	})
}
