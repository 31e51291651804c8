// Copyright (c) 2026 BudCenter. All rights reserved.

// Package interactiontest provides utilities for testing command handlers
// without a gateway session, in the spirit of net/http/httptest.
package interactiontest

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Recorder is an [interaction.Responder] that records every reply.
type Recorder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit

	// RespondErr, when set, is returned by Respond.
	RespondErr error
	// EditErr, when set, is returned by Edit.
	EditErr error
}

// NewRecorder returns an empty [Recorder].
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Respond records the initial response.
func (r *Recorder) Respond(_ context.Context, response *discordgo.InteractionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RespondErr != nil {
		return r.RespondErr
	}
	r.responses = append(r.responses, response)
	return nil
}

// Edit records an edit of the original response.
func (r *Recorder) Edit(_ context.Context, edit *discordgo.WebhookEdit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.EditErr != nil {
		return r.EditErr
	}
	r.edits = append(r.edits, edit)
	return nil
}

// Responses returns a copy of the recorded responses.
func (r *Recorder) Responses() []*discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*discordgo.InteractionResponse(nil), r.responses...)
}

// Edits returns a copy of the recorded edits.
func (r *Recorder) Edits() []*discordgo.WebhookEdit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*discordgo.WebhookEdit(nil), r.edits...)
}

// LastResponse returns the most recent response, or nil.
func (r *Recorder) LastResponse() *discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.responses) == 0 {
		return nil
	}
	return r.responses[len(r.responses)-1]
}

// LastEdit returns the most recent edit, or nil.
func (r *Recorder) LastEdit() *discordgo.WebhookEdit {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.edits) == 0 {
		return nil
	}
	return r.edits[len(r.edits)-1]
}

// FirstEmbed returns the first embed of the most recent response, or nil.
func (r *Recorder) FirstEmbed() *discordgo.MessageEmbed {
	response := r.LastResponse()
	if response == nil || response.Data == nil || len(response.Data.Embeds) == 0 {
		return nil
	}
	return response.Data.Embeds[0]
}

// EditedEmbed returns the first embed of the most recent edit, or nil.
func (r *Recorder) EditedEmbed() *discordgo.MessageEmbed {
	edit := r.LastEdit()
	if edit == nil || edit.Embeds == nil || len(*edit.Embeds) == 0 {
		return nil
	}
	return (*edit.Embeds)[0]
}

// Choices returns the autocomplete choices of the most recent response.
func (r *Recorder) Choices() []string {
	response := r.LastResponse()
	if response == nil || response.Data == nil {
		return nil
	}

	values := make([]string, 0, len(response.Data.Choices))
	for _, choice := range response.Data.Choices {
		values = append(values, choice.Name)
	}
	return values
}
