// Copyright (c) 2026 BudCenter. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// BudBuddy uses them as interaction trace ids and as the correlation tokens
// of '/puff reset' prompts. Being time-ordered, trace ids sort by arrival in
// the logs.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether value parses as a UUID.
func Valid(value string) bool {
	return uuid.Validate(value) == nil
}
