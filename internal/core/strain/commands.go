// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
	"github.com/budcenter/budbuddy/pkg/pointer"
)

// Handler serves the catalog slash commands.
type Handler struct {
	service     *Service
	suggestions *Suggestions
}

func NewHandler(service *Service, suggestions *Suggestions) *Handler {
	return &Handler{service: service, suggestions: suggestions}
}

// Commands implements [interaction.Module].
func (handler *Handler) Commands() []*interaction.Command {
	nsfw := true

	subspeciesOption := interaction.StringOption("subspecies", "Indica, Sativa, Hybrid, or Ruderalis", false)
	for _, subspecies := range AllSubspecies {
		subspeciesOption.Choices = append(subspeciesOption.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  subspecies.String(),
			Value: subspecies.DBValue(),
		})
	}

	search := &interaction.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "search",
			Description: "Searches strains with a filter",
			NSFW:        &nsfw,
			Options: []*discordgo.ApplicationCommandOption{
				interaction.StringOption("name", "Name of the strain", false),
				subspeciesOption,
				autocompleted(interaction.StringOption(DimensionFlavor.String(), "Reported strain flavors", false)),
				autocompleted(interaction.StringOption(DimensionEffect.String(), "Reported strain effects", false)),
				autocompleted(interaction.StringOption(DimensionAilment.String(), "Reported strain ailments", false)),
			},
		},
		Category:     constants.CategoryStrains,
		Handler:      handler.search,
		Autocomplete: handler.autocomplete,
	}

	fetch := &interaction.Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "strain",
			Description: "Fetches a strain by its ID",
			NSFW:        &nsfw,
			Options: []*discordgo.ApplicationCommandOption{
				interaction.IntegerOption("id", "ID of the strain", true),
			},
		},
		Category: constants.CategoryStrains,
		Handler:  handler.strain,
	}

	return []*interaction.Command{search, fetch}
}

func autocompleted(option *discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	option.Autocomplete = true
	return option
}

// # Handlers

func (handler *Handler) search(ctx context.Context, inv *interaction.Invocation) error {
	filter := Filter{
		Name:    inv.String("name"),
		Flavor:  inv.String(DimensionFlavor.String()),
		Effect:  inv.String(DimensionEffect.String()),
		Ailment: inv.String(DimensionAilment.String()),
	}

	if raw := inv.String("subspecies"); raw != nil {
		subspecies, err := ParseSubspecies(*raw)
		if err != nil {
			return err
		}
		filter.Subspecies = &subspecies
	}

	result, err := handler.service.Search(ctx, filter)
	if err != nil {
		return err
	}

	return inv.Reply(ctx, renderListing(filter, result))
}

func (handler *Handler) strain(ctx context.Context, inv *interaction.Invocation) error {
	id, _ := inv.Int("id")

	strain, err := handler.service.Get(ctx, id)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return inv.Reply(ctx, interaction.ErrorReply(
			"Strain Not Found",
			fmt.Sprintf("Couldn't find strain with id: `%d`", id),
		))
	}
	if err != nil {
		return err
	}

	return inv.Reply(ctx, renderDetail(strain))
}

func (handler *Handler) autocomplete(ctx context.Context, _ *interaction.Invocation, option, value string) []string {
	dimension, ok := DimensionForOption(option)
	if !ok {
		return []string{}
	}
	return handler.suggestions.Suggest(ctx, dimension, value)
}

// # Rendering

func renderListing(filter Filter, result *SearchResult) interaction.Reply {
	if len(result.Strains) == 0 {
		return interaction.ErrorReply("No Strains found", "Try broadening your search filters")
	}

	var description strings.Builder
	for _, summary := range result.Strains {
		fmt.Fprintf(&description, "- `%d`: **%s**\n", summary.ID, summary.Name)
	}

	title := "Strains"
	if filter.Name != nil {
		title = fmt.Sprintf(`Strains matching: "%s"`, *filter.Name)
	}

	embed := interaction.NewEmbed(title).Description(description.String())
	if result.Truncated {
		embed.Footer(fmt.Sprintf("Showing the first %d matches. Narrow your filters to see more.", constants.SearchResultCap))
	}

	return interaction.EmbedReply(embed)
}

func renderDetail(strain *Strain) interaction.Reply {
	description, ok := pointer.Text(strain.Description)
	if !ok {
		description = "No description available"
	}

	embed := interaction.NewEmbed(strain.Name).
		Description(description).
		Footer(fmt.Sprintf("ID: %d", strain.ID))

	if strain.Subspecies != nil {
		embed.Field("🎨 Subspecies", strain.Subspecies.String(), false)
	}
	if len(strain.PositiveEffects) > 0 {
		embed.Field("🔺 Positive Effects", strings.Join(strain.PositiveEffects, ", "), false)
	}
	if len(strain.NegativeEffects) > 0 {
		embed.Field("🔻 Negative Effects", strings.Join(strain.NegativeEffects, ", "), true)
	}
	if len(strain.Flavors) > 0 {
		embed.Field("👅 Flavors", strings.Join(strain.Flavors, ", "), false)
	}
	if len(strain.Ailments) > 0 {
		embed.Field("💊 Ailments", strings.Join(strain.Ailments, ", "), false)
	}
	if imageURL, ok := pointer.Text(strain.ImageURL); ok {
		embed.Image(imageURL)
	}

	return interaction.EmbedReply(embed)
}
