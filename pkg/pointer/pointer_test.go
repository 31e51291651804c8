// Copyright (c) 2026 BudCenter. All rights reserved.

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOr(t *testing.T) {
	assert.Equal(t, 7, Or(To(7), 1))
	assert.Equal(t, 1, Or[int](nil, 1))
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
		ok    bool
	}{
		{name: "Nil", input: nil},
		{name: "Blank", input: To("   ")},
		{name: "Value", input: To("Earthy"), want: "Earthy", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
