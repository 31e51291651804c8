// Copyright (c) 2026 BudCenter. All rights reserved.

package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
	"github.com/budcenter/budbuddy/internal/platform/interaction/interactiontest"
	"github.com/budcenter/budbuddy/pkg/uuidv7"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func commandInvocation(actor interactiontest.Actor, name string) (*interaction.Invocation, *interactiontest.Recorder) {
	recorder := interactiontest.NewRecorder()
	return interaction.NewInvocation(interactiontest.Command(actor, name), recorder), recorder
}

func componentInvocation(actor interactiontest.Actor, customID string) (*interaction.Invocation, *interactiontest.Recorder) {
	recorder := interactiontest.NewRecorder()
	return interaction.NewInvocation(interactiontest.Component(actor, customID), recorder), recorder
}

func ok(context.Context, *interaction.Invocation) error { return nil }

/*
TestChain_Order verifies that the first middleware runs outermost.
*/
func TestChain_Order(t *testing.T) {
	var calls []string
	record := func(name string) Middleware {
		return func(next interaction.HandlerFunc) interaction.HandlerFunc {
			return func(ctx context.Context, inv *interaction.Invocation) error {
				calls = append(calls, name)
				return next(ctx, inv)
			}
		}
	}

	inv, _ := commandInvocation(interactiontest.DefaultActor, "ping")
	require.NoError(t, chain(ok, record("a"), record("b"), record("c"))(context.Background(), inv))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestTrace_AttachesTraceAndActor(t *testing.T) {
	inv, _ := commandInvocation(interactiontest.DefaultActor, "ping")

	var traceID string
	var actor ctxutil.Actor
	handler := Trace()(func(ctx context.Context, _ *interaction.Invocation) error {
		traceID = ctxutil.GetTraceID(ctx)
		actor, _ = ctxutil.GetActor(ctx)
		return nil
	})

	require.NoError(t, handler(context.Background(), inv))
	assert.True(t, uuidv7.Valid(traceID))
	assert.Equal(t, interactiontest.DefaultActor.UserID, actor.UserID)
	assert.Equal(t, interactiontest.DefaultActor.GuildID, actor.GuildID)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	inv, _ := commandInvocation(interactiontest.DefaultActor, "ping")

	handler := Timeout(time.Minute)(func(ctx context.Context, _ *interaction.Invocation) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		return nil
	})

	require.NoError(t, handler(context.Background(), inv))
}

/*
TestOutcomeOf verifies the outcome labels used by logs and metrics.
*/
func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Success", err: nil, want: "ok"},
		{name: "Plain error", err: errors.New("boom"), want: "error"},
		{name: "Internal", err: apperr.Internal(errors.New("boom")), want: "error"},
		{name: "Rate limited", err: apperr.RateLimited(2), want: "rate_limited"},
		{name: "Blacklisted", err: apperr.Blacklisted("Your account"), want: "blacklisted"},
		{name: "Not found", err: apperr.NotFound("Strain"), want: "expected"},
		{name: "Validation", err: apperr.ValidationError("Invalid command options"), want: "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outcomeOf(tt.err))
		})
	}
}

func TestStructuredLogger_InjectsLogger(t *testing.T) {
	inv, _ := commandInvocation(interactiontest.DefaultActor, "ping")
	want := errors.New("boom")

	handler := StructuredLogger(discardLogger())(func(ctx context.Context, _ *interaction.Invocation) error {
		assert.NotSame(t, slog.Default(), ctxutil.GetLogger(ctx))
		return want
	})

	assert.Same(t, want, handler(context.Background(), inv))
}

// # Rate Limiting

/*
TestRateLimiter_Reserve verifies the token bucket per user.

Scenarios:
  - The burst is granted immediately.
  - The next command is refused with the time until a token frees up.
  - Other users keep their own bucket.
  - A refused attempt does not consume a token.
*/
func TestRateLimiter_Reserve(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := NewRateLimiter(ctx, 1, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.reserve("alice", now)
		require.True(t, allowed, "burst command %d", i)
	}

	allowed, delay := limiter.reserve("alice", now)
	assert.False(t, allowed)
	assert.InDelta(t, time.Second.Seconds(), delay.Seconds(), 0.01)

	allowed, _ = limiter.reserve("bob", now)
	assert.True(t, allowed)

	allowed, _ = limiter.reserve("alice", now.Add(time.Second))
	assert.True(t, allowed)
}

func TestRateLimiter_Sweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := NewRateLimiter(ctx, 1, 1)
	now := time.Now()

	limiter.reserve("idle", now.Add(-constants.RateLimitClientTTL-time.Second))
	limiter.reserve("active", now)

	limiter.sweep(now)

	assert.NotContains(t, limiter.clients, "idle")
	assert.Contains(t, limiter.clients, "active")
}

func TestRateLimiter_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	handler := NewRateLimiter(ctx, 1, 1).Middleware()(ok)

	first, _ := commandInvocation(interactiontest.DefaultActor, "ping")
	require.NoError(t, handler(context.Background(), first))

	second, _ := commandInvocation(interactiontest.DefaultActor, "ping")
	err := handler(context.Background(), second)
	require.True(t, apperr.HasCode(err, apperr.CodeRateLimited))
	assert.Equal(t, "Slow down! Try again in 1s.", err.Error())

	// Button presses belong to a command that was already admitted.
	press, _ := componentInvocation(interactiontest.DefaultActor, "puff_reset:confirm:token")
	assert.NoError(t, handler(context.Background(), press))
}

// # Moderation

type stubChecker struct {
	flagged bool
	err     error
	calls   int
}

func (checker *stubChecker) Blacklisted(context.Context, string, string) (bool, error) {
	checker.calls++
	return checker.flagged, checker.err
}

/*
TestBlacklist verifies moderation of slash commands.

Scenarios:
  - Flagged actors are refused with BLACKLISTED.
  - Store failures let the command through.
  - Components skip the check.
*/
func TestBlacklist(t *testing.T) {
	tests := []struct {
		name      string
		checker   *stubChecker
		component bool
		wantCode  string
		wantCalls int
	}{
		{name: "Clean actor", checker: &stubChecker{}, wantCalls: 1},
		{name: "Flagged actor", checker: &stubChecker{flagged: true}, wantCode: apperr.CodeBlacklisted, wantCalls: 1},
		{name: "Store failure fails open", checker: &stubChecker{err: errors.New("db down")}, wantCalls: 1},
		{name: "Component skips check", checker: &stubChecker{flagged: true}, component: true, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, _ := commandInvocation(interactiontest.DefaultActor, "puff")
			if tt.component {
				inv, _ = componentInvocation(interactiontest.DefaultActor, "puff_reset:cancel:token")
			}

			reached := false
			err := Blacklist(tt.checker)(func(context.Context, *interaction.Invocation) error {
				reached = true
				return nil
			})(context.Background(), inv)

			assert.Equal(t, tt.wantCalls, tt.checker.calls)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode))
				assert.False(t, reached)
				return
			}
			assert.NoError(t, err)
			assert.True(t, reached)
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	inv, _ := commandInvocation(interactiontest.DefaultActor, "ping")

	err := PanicRecovery()(func(context.Context, *interaction.Invocation) error {
		panic("nil map write")
	})(context.Background(), inv)

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeInternal, appErr.Code)
	assert.ErrorContains(t, appErr.Cause, "nil map write")
}
