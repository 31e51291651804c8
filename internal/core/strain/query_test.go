// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/budcenter/budbuddy/pkg/pointer"
)

/*
TestBuildSearchQuery verifies the composed statement and its arguments.
*/
func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name         string
		filter       Filter
		expectedArgs []any
		contains     []string
		excludes     []string
	}{
		{
			name:         "no_filters",
			filter:       Filter{},
			expectedArgs: []any{16},
			contains:     []string{"FROM cannabis.strains s ORDER BY s.id ASC LIMIT $1"},
			excludes:     []string{"WHERE", "EXISTS"},
		},
		{
			name:         "name_is_escaped",
			filter:       Filter{Name: pointer.To(`50%_off\`)},
			expectedArgs: []any{`50\%\_off\\`, 16},
			contains:     []string{`s.name ILIKE '%' || $1 || '%' ESCAPE '\'`, "LIMIT $2"},
		},
		{
			name:         "subspecies_cast",
			filter:       Filter{Subspecies: pointer.To(Indica)},
			expectedArgs: []any{"indica", 16},
			contains:     []string{"s.subspecies = $1::cannabis.subspecies"},
		},
		{
			name:         "single_tag_filter",
			filter:       Filter{Effect: pointer.To("Happy")},
			expectedArgs: []any{"Happy", 16},
			contains: []string{
				"EXISTS (SELECT 1 FROM cannabis.strain_effects j JOIN cannabis.effects t ON t.id = j.effect_id",
				"lower(t.name) = lower($1)",
			},
			excludes: []string{"strain_flavors", "strain_ailments"},
		},
		{
			name: "every_filter",
			filter: Filter{
				Name:       pointer.To("Kush"),
				Subspecies: pointer.To(Hybrid),
				Flavor:     pointer.To("Berry"),
				Effect:     pointer.To("Relaxed"),
				Ailment:    pointer.To("Stress"),
			},
			expectedArgs: []any{"Kush", "hybrid", "Berry", "Relaxed", "Stress", 16},
			contains: []string{
				"cannabis.strain_flavors", "cannabis.strain_effects", "cannabis.strain_ailments",
				"lower($3)", "lower($4)", "lower($5)", "LIMIT $6",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildSearchQuery(tt.filter, 16)

			assert.Equal(t, tt.expectedArgs, args)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.excludes {
				assert.NotContains(t, query, fragment)
			}

			// Matches are never multiplied by joins, so no outer join or DISTINCT is needed.
			assert.NotContains(t, query, "LEFT JOIN")
			assert.NotContains(t, query, "DISTINCT")
		})
	}
}

/*
TestBuildSearchQuery_ConditionsJoinedWithAnd ensures every filter narrows the result.
*/
func TestBuildSearchQuery_ConditionsJoinedWithAnd(t *testing.T) {
	query, _ := buildSearchQuery(Filter{Name: pointer.To("a"), Flavor: pointer.To("b"), Ailment: pointer.To("c")}, 16)

	assert.True(t, strings.HasPrefix(query, "SELECT s.id, s.name FROM cannabis.strains s WHERE s.name ILIKE"))
	assert.Equal(t, 2, strings.Count(query, " AND EXISTS"))
	assert.NotContains(t, query, " OR ")
}

/*
TestBuildTagQuery checks the snapshot statement for every dimension.
*/
func TestBuildTagQuery(t *testing.T) {
	expected := map[Dimension]string{
		DimensionFlavor:  "SELECT DISTINCT name FROM cannabis.flavors ORDER BY name ASC LIMIT $1",
		DimensionEffect:  "SELECT DISTINCT name FROM cannabis.effects ORDER BY name ASC LIMIT $1",
		DimensionAilment: "SELECT DISTINCT name FROM cannabis.ailments ORDER BY name ASC LIMIT $1",
	}

	for dimension, query := range expected {
		assert.Equal(t, query, buildTagQuery(dimension), dimension.String())
	}
}
