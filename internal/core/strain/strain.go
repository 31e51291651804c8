// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package strain serves the read-only strain catalog: filtered search, detail
cards, and autocomplete suggestions for the tag filters.

Flow:

  - '/search' builds a [Filter] and asks the [Service] for at most
    [constants.SearchResultCap] summaries ordered by id.
  - '/strain' fetches one [Strain] with its tag sets, through the optional
    [DetailCache].
  - Autocomplete for the flavor, effect and ailment options is answered from a
    [Suggestions] snapshot populated once per [Dimension].

The catalog is maintained outside the bot; nothing in this package writes to it.
*/
package strain

import (
	"fmt"
	"strings"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/database/schema"
)

// ErrStrainNotFound is returned for ids that do not exist or cannot exist.
var ErrStrainNotFound = apperr.NotFound("Strain")

// # Catalog Entities

// Strain is one catalog entry with its tag collections, as shown on a detail card.
type Strain struct {
	ID          int32       `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Subspecies  *Subspecies `json:"subspecies,omitempty"`
	ImageURL    *string     `json:"image_url,omitempty"`

	PositiveEffects []string `json:"positive_effects"`
	NegativeEffects []string `json:"negative_effects"`
	Flavors         []string `json:"flavors"`
	Ailments        []string `json:"ailments"`
}

// Summary is the listing view of a strain.
type Summary struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Filter holds the optional '/search' criteria. A nil field imposes no constraint.
type Filter struct {
	// Name matches as a case-insensitive substring.
	Name *string

	// Subspecies matches exactly.
	Subspecies *Subspecies

	// Flavor, Effect and Ailment match a joined tag case-insensitively and exactly.
	Flavor  *string
	Effect  *string
	Ailment *string
}

// IsEmpty reports whether no criteria are set.
func (f Filter) IsEmpty() bool {
	return f.Name == nil && f.Subspecies == nil && f.Flavor == nil && f.Effect == nil && f.Ailment == nil
}

// SearchResult is the capped, id-ordered answer to a search.
type SearchResult struct {
	Strains []Summary

	// Truncated reports that more strains matched than were returned.
	Truncated bool
}

// # Subspecies

// Subspecies is the closed set of strain categories.
//
// The value is the label stored in the 'cannabis.subspecies' Postgres enum.
type Subspecies string

const (
	Hybrid    Subspecies = "hybrid"
	Indica    Subspecies = "indica"
	Sativa    Subspecies = "sativa"
	Ruderalis Subspecies = "ruderalis"
)

// AllSubspecies lists every category in display order.
var AllSubspecies = []Subspecies{Hybrid, Indica, Sativa, Ruderalis}

// ParseSubspecies maps a stored or user-supplied label to a [Subspecies].
// Unknown labels are rejected.
func ParseSubspecies(raw string) (Subspecies, error) {
	candidate := Subspecies(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllSubspecies {
		if candidate == known {
			return known, nil
		}
	}
	return "", apperr.ValidationError("Unknown subspecies", apperr.FieldError{
		Field:   "subspecies",
		Message: fmt.Sprintf("%q is not one of Hybrid, Indica, Sativa or Ruderalis", raw),
	})
}

// String returns the display label.
func (s Subspecies) String() string {
	switch s {
	case Hybrid:
		return "Hybrid"
	case Indica:
		return "Indica"
	case Sativa:
		return "Sativa"
	case Ruderalis:
		return "Ruderalis"
	}
	return string(s)
}

// DBValue returns the Postgres enum label.
func (s Subspecies) DBValue() string {
	return string(s)
}

// # Tag Dimensions

// Dimension is one of the tag vocabularies a search can filter on.
type Dimension int

const (
	DimensionFlavor Dimension = iota
	DimensionEffect
	DimensionAilment
)

// AllDimensions lists every tag dimension.
var AllDimensions = []Dimension{DimensionFlavor, DimensionEffect, DimensionAilment}

// String returns the option name used by '/search'.
func (d Dimension) String() string {
	switch d {
	case DimensionFlavor:
		return "flavor"
	case DimensionEffect:
		return "effect"
	case DimensionAilment:
		return "ailment"
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// DimensionForOption maps a '/search' option name to its [Dimension].
func DimensionForOption(option string) (Dimension, bool) {
	for _, dimension := range AllDimensions {
		if dimension.String() == option {
			return dimension, true
		}
	}
	return 0, false
}

// tables returns the dimension table and the strain join table.
func (d Dimension) tables() (schema.TagTable, schema.StrainTagTable) {
	switch d {
	case DimensionEffect:
		return schema.CannabisEffect, schema.StrainEffect
	case DimensionAilment:
		return schema.CannabisAilment, schema.StrainAilment
	default:
		return schema.CannabisFlavor, schema.StrainFlavor
	}
}
