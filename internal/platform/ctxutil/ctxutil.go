// Copyright (c) 2026 BudCenter. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/budcenter/budbuddy/internal/platform/ctxkey"
)

// # Interaction Tracing

// WithTraceID returns a new context with the provided trace ID attached.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyTraceID, id)
}

// GetTraceID retrieves the trace ID from the context.
// Returns an empty string if not found.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyTraceID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity

// Actor identifies who triggered an interaction and where.
type Actor struct {
	UserID    string
	GuildID   string
	ChannelID string
}

// WithActor returns a new context with the invoking actor attached.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ctxkey.KeyActor, actor)
}

// GetActor retrieves the [Actor] from the context.
func GetActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ctxkey.KeyActor).(Actor)
	return actor, ok
}
