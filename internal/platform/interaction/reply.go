// Copyright (c) 2026 BudCenter. All rights reserved.

package interaction

import (
	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/constants"
)

// Reply is a chat message sent in answer to an interaction.
type Reply struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// EmbedReply wraps a single embed in a [Reply].
func EmbedReply(embed *Embed) Reply {
	return Reply{Embeds: []*discordgo.MessageEmbed{embed.Build()}}
}

// ErrorReply builds the red title-and-description reply used for failures.
func ErrorReply(title string, description string) Reply {
	embed := NewEmbed(title).Color(constants.ColorRed)
	if description != "" {
		embed.Description(description)
	}
	return EmbedReply(embed)
}

func (r Reply) responseData() *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

// webhookEdit always sets every field so an edit also strips stale buttons.
func (r Reply) webhookEdit() *discordgo.WebhookEdit {
	content := r.Content
	embeds := r.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	components := r.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}

	return &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}
}

// # Embeds

// Embed is a fluent builder for [discordgo.MessageEmbed].
type Embed struct {
	embed *discordgo.MessageEmbed
}

// NewEmbed starts an embed with the given title and the default colour.
func NewEmbed(title string) *Embed {
	return &Embed{embed: &discordgo.MessageEmbed{
		Title: title,
		Color: constants.ColorPurple,
	}}
}

// Description sets the embed body.
func (e *Embed) Description(text string) *Embed {
	e.embed.Description = text
	return e
}

// Color sets the embed side colour.
func (e *Embed) Color(color int) *Embed {
	e.embed.Color = color
	return e
}

// Field appends a field.
func (e *Embed) Field(name, value string, inline bool) *Embed {
	e.embed.Fields = append(e.embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return e
}

// Footer sets the footer text.
func (e *Embed) Footer(text string) *Embed {
	e.embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	return e
}

// Image sets the large image.
func (e *Embed) Image(url string) *Embed {
	e.embed.Image = &discordgo.MessageEmbedImage{URL: url}
	return e
}

// Build returns the finished embed.
func (e *Embed) Build() *discordgo.MessageEmbed {
	return e.embed
}

// # Components

// Buttons wraps buttons in a single action row.
func Buttons(buttons ...discordgo.Button) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, button := range buttons {
		row.Components = append(row.Components, button)
	}
	return []discordgo.MessageComponent{row}
}

// LinkButton builds a URL button. The emoji is optional.
func LinkButton(label, url, emoji string) discordgo.Button {
	button := discordgo.Button{
		Label: label,
		Style: discordgo.LinkButton,
		URL:   url,
	}
	if emoji != "" {
		button.Emoji = &discordgo.ComponentEmoji{Name: emoji}
	}
	return button
}
