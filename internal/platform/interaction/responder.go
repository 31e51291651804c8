// Copyright (c) 2026 BudCenter. All rights reserved.

package interaction

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// SessionResponder is the [Responder] backed by a live gateway session.
type SessionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewSessionResponder binds a responder to one interaction.
func NewSessionResponder(session *discordgo.Session, interaction *discordgo.Interaction) *SessionResponder {
	return &SessionResponder{session: session, interaction: interaction}
}

// Respond implements [Responder].
func (r *SessionResponder) Respond(ctx context.Context, response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response, discordgo.WithContext(ctx))
}

// Edit implements [Responder].
func (r *SessionResponder) Edit(ctx context.Context, edit *discordgo.WebhookEdit) error {
	_, err := r.session.InteractionResponseEdit(r.interaction, edit, discordgo.WithContext(ctx))
	return err
}
