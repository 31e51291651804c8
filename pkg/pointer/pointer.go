// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package pointer provides helpers for the optional fields of command options
and catalog records, which are modelled as pointers.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Or: Dereferences a pointer, returning a fallback if nil.
  - Text: Dereferences an optional string, treating blank as absent.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Or dereferences p, or returns fallback when p is nil.
func Or[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Text returns the value of an optional string and whether it holds
// anything besides whitespace.
func Text(p *string) (string, bool) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", false
	}
	return *p, true
}
