// Copyright (c) 2026 BudCenter. All rights reserved.

// Package ctxkey defines typed context keys used by the interaction middleware
// and command handlers.
//
// # Safety
//
// It is used to store and retrieve per-interaction values (trace ID, logger, actor).
// Using a private, unexported type for keys prevents collisions with third-party
// packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyTraceID is the context key for the per-interaction correlation value.
	KeyTraceID key = "trace_id"

	// KeyActor is the context key for the invoking user and guild ([ctxutil.Actor]).
	KeyActor key = "actor"

	// KeyLogger is the context key for the per-interaction [*log/slog.Logger].
	KeyLogger key = "logger"
)
