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

// ChannelNotifier posts diagnostic embeds. *discordgo.Session implements it.
type ChannelNotifier interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Reporter is the single top-level handler for errors returned by commands.
//
// Expected errors are answered to the user and stop there. Anything else gets a
// generic notice, an error log entry and, when an error channel is configured, a
// diagnostic embed for whoever is on call.
type Reporter struct {
	notifier  ChannelNotifier
	channelID string
}

// NewReporter creates a reporter. An empty channelID disables the diagnostic embed.
func NewReporter(notifier ChannelNotifier, channelID string) *Reporter {
	return &Reporter{notifier: notifier, channelID: channelID}
}

/*
Report answers a failed interaction.

Parameters:
  - ctx: context.Context (carries the interaction logger and trace id)
  - inv: *interaction.Invocation
  - err: error returned by the handler chain
*/
func (reporter *Reporter) Report(ctx context.Context, inv *interaction.Invocation, err error) {
	logger := ctxutil.GetLogger(ctx)

	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.Expected() {
		reporter.reply(ctx, inv, expectedReply(appErr))
		return
	}

	logger.ErrorContext(ctx, "command_failed",
		slog.String("code", appErr.Code),
		slog.Any("error", err),
	)

	reporter.reply(ctx, inv, interaction.ErrorReply(
		"Something went wrong",
		"An unexpected error occurred. The team has been notified.",
	))

	reporter.escalate(ctx, inv, err)
}

// reply answers with a new message, or replaces the existing response.
func (reporter *Reporter) reply(ctx context.Context, inv *interaction.Invocation, reply interaction.Reply) {
	// The handler context may be the reason for the failure.
	replyCtx := context.WithoutCancel(ctx)

	var err error
	if inv.Responded() {
		err = inv.EditReply(replyCtx, reply)
	} else {
		reply.Ephemeral = true
		err = inv.Reply(replyCtx, reply)
	}

	if err != nil {
		ctxutil.GetLogger(ctx).Warn("error_reply_failed", slog.Any("error", err))
	}
}

// escalate posts the diagnostic embed to the operations channel.
func (reporter *Reporter) escalate(ctx context.Context, inv *interaction.Invocation, cause error) {
	if reporter.channelID == "" || reporter.notifier == nil {
		return
	}

	_, err := reporter.notifier.ChannelMessageSendEmbed(reporter.channelID, diagnosticEmbed(ctx, inv, cause),
		discordgo.WithContext(context.WithoutCancel(ctx)))
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("error_escalation_failed", slog.Any("error", err))
	}
}

func diagnosticEmbed(ctx context.Context, inv *interaction.Invocation, cause error) *discordgo.MessageEmbed {
	orDash := func(value string) string {
		if value == "" {
			return "-"
		}
		return value
	}

	message := cause.Error()
	if len(message) > 1000 {
		message = message[:1000] + "…"
	}

	return interaction.NewEmbed("Command error").
		Color(constants.ColorRed).
		Field("Command", "/"+inv.Name, true).
		Field("User", fmt.Sprintf("<@%s> (%s)", inv.Actor.UserID, inv.Actor.UserID), true).
		Field("Guild", orDash(inv.Actor.GuildID), true).
		Field("Channel", orDash(inv.Actor.ChannelID), true).
		Field("Trace ID", orDash(ctxutil.GetTraceID(ctx)), false).
		Field("Error", "```"+message+"```", false).
		Build()
}

// expectedReply maps an expected error to the message the user sees.
func expectedReply(appErr *apperr.AppError) interaction.Reply {
	title := "Request refused"
	switch appErr.Code {
	case apperr.CodeNotFound:
		title = "Not found"
	case apperr.CodeValidation:
		title = "Invalid input"
	case apperr.CodeRateLimited:
		title = "Slow down"
	case apperr.CodeBlacklisted:
		title = "Blacklisted"
	case apperr.CodeForbidden:
		title = "Not allowed"
	}

	description := appErr.Message
	if len(appErr.Details) > 0 {
		lines := make([]string, 0, len(appErr.Details)+1)
		lines = append(lines, description)
		for _, detail := range appErr.Details {
			lines = append(lines, fmt.Sprintf("- `%s`: %s", detail.Field, detail.Message))
		}
		description = strings.Join(lines, "\n")
	}

	return interaction.ErrorReply(title, description)
}
