// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/pkg/pointer"
)

/*
TestParseSubspecies verifies that only the four known categories are accepted.
*/
func TestParseSubspecies(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Subspecies
		hasError bool
	}{
		{"lowercase", "indica", Indica, false},
		{"display_label", "Sativa", Sativa, false},
		{"padded", "  hybrid ", Hybrid, false},
		{"ruderalis", "RUDERALIS", Ruderalis, false},
		{"unknown", "kush", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseSubspecies(tt.raw)
			if tt.hasError {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

/*
TestSubspecies_Labels checks the display and database forms.
*/
func TestSubspecies_Labels(t *testing.T) {
	assert.Equal(t, "Ruderalis", Ruderalis.String())
	assert.Equal(t, "ruderalis", Ruderalis.DBValue())
}

/*
TestDimensionForOption maps '/search' option names to tag dimensions.
*/
func TestDimensionForOption(t *testing.T) {
	for _, dimension := range AllDimensions {
		found, ok := DimensionForOption(dimension.String())
		require.True(t, ok)
		assert.Equal(t, dimension, found)
	}

	_, ok := DimensionForOption("name")
	assert.False(t, ok)
}

/*
TestFilter_IsEmpty reports whether any criterion is set.
*/
func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{Effect: pointer.To("Happy")}.IsEmpty())
}
