// Copyright (c) 2026 BudCenter. All rights reserved.

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/pkg/uuidv7"
)

/*
TestNew produces distinct version 7 identifiers.
*/
func TestNew(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()

	assert.NotEqual(t, first, second)

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

/*
TestValid accepts canonical UUIDs and rejects anything else.
*/
func TestValid(t *testing.T) {
	assert.True(t, uuidv7.Valid(uuidv7.New()))
	assert.False(t, uuidv7.Valid("not-a-token"))
	assert.False(t, uuidv7.Valid(""))
}
