// Copyright (c) 2026 BudCenter. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory option validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Blue Dream", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MaxLenPtr checks that optional values are only measured when present.
*/
func TestValidator_MaxLenPtr(t *testing.T) {
	short := "Lemon"
	long := "ÄÄÄÄÄÄ"

	tests := []struct {
		name     string
		value    *string
		hasError bool
	}{
		{"absent", nil, false},
		{"within_limit", &short, false},
		{"counts_runes_not_bytes", &long, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MaxLenPtr("flavor", tt.value, 5)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Range checks inclusive bounds.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		hasError bool
	}{
		{"lower_bound", 1, false},
		{"upper_bound", 10, false},
		{"below", 0, true},
		{"above", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("id", tt.value, 1, 10)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").                         // Fails
		OneOf("scope", "planet", "global", "guild").  // Fails
		Custom("scope", true, "Run inside a server"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
	assert.True(t, ae.Expected())
}
