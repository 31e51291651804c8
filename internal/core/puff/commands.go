// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

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

// ResetPrefix is the custom id prefix of the reset prompt buttons.
const ResetPrefix = "puff_reset"

// Handler serves '/puff' and the reset prompt buttons.
type Handler struct {
	service *Service
	prompts *Prompts
}

func NewHandler(service *Service, prompts *Prompts) *Handler {
	return &Handler{service: service, prompts: prompts}
}

// Commands implements [interaction.Module].
func (handler *Handler) Commands() []*interaction.Command {
	return []*interaction.Command{{
		Definition: &discordgo.ApplicationCommand{
			Name:        "puff",
			Description: "Track puffs on the leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				interaction.Subcommand("take", "Take a puff"),
				interaction.Subcommand("reset", "Reset your puff counter"),
				interaction.Subcommand("stats", "Show your puffs and this server's puffs"),
				interaction.Subcommand("leaderboard", "Show the top puffers"),
			},
		},
		Category: constants.CategoryStrains,
		Subcommands: map[string]interaction.HandlerFunc{
			"take":        handler.take,
			"reset":       handler.reset,
			"stats":       handler.stats,
			"leaderboard": handler.leaderboard,
		},
	}}
}

// Components implements [interaction.ComponentModule].
func (handler *Handler) Components() []*interaction.Component {
	return []*interaction.Component{{Prefix: ResetPrefix, Handler: handler.resetButton}}
}

// # Take

func (handler *Handler) take(ctx context.Context, inv *interaction.Invocation) error {
	result, err := handler.service.Take(ctx, inv.Actor)
	if err != nil {
		return err
	}

	embed := interaction.NewEmbed("💨 Puff taken").
		Description(fmt.Sprintf("You have taken **%d** %s.", result.UserPuffs, puffs(result.UserPuffs)))

	switch {
	case result.GuildPuffs != nil:
		embed.Field("This server", fmt.Sprintf("**%d** %s", *result.GuildPuffs, puffs(*result.GuildPuffs)), true)
	case apperr.HasCode(result.GuildErr, apperr.CodeBlacklisted):
		embed.Field("This server", "This server's counter is disabled.", true)
	case result.GuildErr != nil:
		embed.Field("This server", "The server counter could not be updated.", true)
	}

	return inv.Reply(ctx, interaction.EmbedReply(embed))
}

// # Reset

func (handler *Handler) reset(ctx context.Context, inv *interaction.Invocation) error {
	prompt := handler.prompts.Open(inv.Actor.UserID)

	err := inv.Reply(ctx, interaction.Reply{
		Embeds: []*discordgo.MessageEmbed{
			interaction.NewEmbed("Reset your puffs?").
				Description("This sets your counter back to zero and cannot be undone.").
				Footer(fmt.Sprintf("Expires in %d seconds", int(constants.ResetConfirmWindow.Seconds()))).
				Build(),
		},
		Components: interaction.Buttons(
			discordgo.Button{
				Label:    "Confirm",
				Style:    discordgo.DangerButton,
				CustomID: interaction.CustomID(ResetPrefix, string(ChoiceConfirm), prompt.Token),
			},
			discordgo.Button{
				Label:    "Cancel",
				Style:    discordgo.SecondaryButton,
				CustomID: interaction.CustomID(ResetPrefix, string(ChoiceCancel), prompt.Token),
			},
		),
	})
	if err != nil {
		// The prompt never reached the user; withdraw it.
		handler.prompts.Deliver(prompt.Token, inv.Actor.UserID, ChoiceCancel)
		return err
	}

	switch prompt.Await(ctx) {
	case ResetConfirmed:
		if err := handler.service.Reset(ctx, inv.Actor.UserID); err != nil {
			return err
		}
		return inv.EditReply(ctx, interaction.EmbedReply(
			interaction.NewEmbed("Puffs reset").
				Description("Your counter is back to zero.").
				Color(constants.ColorGreen),
		))

	case ResetCanceled:
		return inv.EditReply(ctx, interaction.EmbedReply(
			interaction.NewEmbed("Reset cancelled").
				Description("Your puffs are untouched.").
				Color(constants.ColorGrey),
		))

	default:
		// Shutdown also ends the wait; the prompt must still be closed.
		return inv.EditReply(context.WithoutCancel(ctx), interaction.EmbedReply(
			interaction.NewEmbed("Reset expired").
				Description("No answer was given in time. Nothing was changed.").
				Color(constants.ColorGrey),
		))
	}
}

// resetButton routes a press to its prompt. The waiting reset handler edits the message.
func (handler *Handler) resetButton(ctx context.Context, inv *interaction.Invocation) error {
	parts := interaction.SplitCustomID(inv.CustomID)
	if len(parts) != 3 {
		return inv.Acknowledge(ctx)
	}

	choice, ok := ParseResetChoice(parts[1])
	if !ok {
		return inv.Acknowledge(ctx)
	}

	delivery := handler.prompts.Deliver(parts[2], inv.Actor.UserID, choice)
	if delivery == Unknown {
		return inv.Reply(ctx, interaction.Reply{Content: "This prompt is no longer active.", Ephemeral: true})
	}

	if delivery == NotOwner {
		ctxutil.GetLogger(ctx).Debug("puff_reset_foreign_press", slog.String("token", parts[2]))
	}
	return inv.Acknowledge(ctx)
}

// # Stats

func (handler *Handler) stats(ctx context.Context, inv *interaction.Invocation) error {
	stats, err := handler.service.Stats(ctx, inv.Actor)
	if err != nil {
		return err
	}

	embed := interaction.NewEmbed("📊 Puff stats").
		Field("You", fmt.Sprintf("**%d** %s", stats.UserPuffs, puffs(stats.UserPuffs)), true)
	if stats.GuildPuffs != nil {
		embed.Field("This server", fmt.Sprintf("**%d** %s", *stats.GuildPuffs, puffs(*stats.GuildPuffs)), true)
	}

	return inv.Reply(ctx, interaction.EmbedReply(embed))
}

func (handler *Handler) leaderboard(ctx context.Context, inv *interaction.Invocation) error {
	entries, err := handler.service.Leaderboard(ctx)
	if err != nil {
		return err
	}

	embed := interaction.NewEmbed("🏆 Puff leaderboard")
	if len(entries) == 0 {
		embed.Description("No puffs taken yet. Be the first with `/puff take`.")
		return inv.Reply(ctx, interaction.EmbedReply(embed))
	}

	var lines strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&lines, "`#%d` <@%s>: **%d** %s\n", entry.Rank, entry.UserID, entry.Puffs, puffs(entry.Puffs))
	}
	embed.Description(lines.String())

	return inv.Reply(ctx, interaction.Reply{
		Embeds: []*discordgo.MessageEmbed{embed.Build()},
	})
}

func puffs(count int64) string {
	if count == 1 {
		return "puff"
	}
	return "puffs"
}
