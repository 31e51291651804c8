// Copyright (c) 2026 BudCenter. All rights reserved.

package discord

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
	"github.com/budcenter/budbuddy/internal/platform/interaction"
	"github.com/budcenter/budbuddy/internal/platform/metrics"
	"github.com/budcenter/budbuddy/pkg/uuidv7"
)

// Middleware decorates an interaction handler.
type Middleware func(next interaction.HandlerFunc) interaction.HandlerFunc

// chain applies middlewares so that the first one runs outermost.
func chain(handler interaction.HandlerFunc, middlewares ...Middleware) interaction.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func isCommand(inv *interaction.Invocation) bool {
	return inv.Interaction.Type == discordgo.InteractionApplicationCommand
}

// # Interaction Tracing

// Trace attaches a UUIDv7 trace id and the invoking actor to the context.
func Trace() Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) error {
			ctx = ctxutil.WithTraceID(ctx, uuidv7.New())
			ctx = ctxutil.WithActor(ctx, inv.Actor)
			return next(ctx, inv)
		}
	}
}

// # Activity Logging

// StructuredLogger injects an interaction-scoped logger and records the outcome
// of every slash command in the log and in the command metrics.
func StructuredLogger(logger *slog.Logger) Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) error {
			startTime := time.Now()

			// 1. Create a sub-logger for this specific interaction
			interactionLogger := logger.With(
				slog.String("trace_id", ctxutil.GetTraceID(ctx)),
				slog.String("command", inv.Name),
				slog.String("user_id", inv.Actor.UserID),
				slog.String("guild_id", inv.Actor.GuildID),
			)

			// 2. Inject this logger into the context for downstream use
			ctx = ctxutil.WithLogger(ctx, interactionLogger)

			// 3. Proceed to downstream handlers with the enriched context
			err := next(ctx, inv)

			if !isCommand(inv) {
				return err
			}

			// 4. Final log entry after the command is finished
			latency := time.Since(startTime)
			outcome := outcomeOf(err)
			logLevel := slog.LevelInfo

			switch outcome {
			case "error":
				logLevel = slog.LevelError
			case "expected":
				logLevel = slog.LevelWarn
			}

			metrics.CommandsTotal.WithLabelValues(inv.Name, outcome).Inc()
			metrics.CommandDuration.WithLabelValues(inv.Name).Observe(latency.Seconds())

			interactionLogger.Log(ctx, logLevel, "command_finished",
				slog.String("outcome", outcome),
				slog.Int64("latency_ms", latency.Milliseconds()),
			)
			return err
		}
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}

	ae := apperr.As(err)
	switch {
	case ae == nil || !ae.Expected():
		return "error"
	case ae.Code == apperr.CodeRateLimited:
		return "rate_limited"
	case ae.Code == apperr.CodeBlacklisted:
		return "blacklisted"
	}
	return "expected"
}

// # Deadlines

// Timeout bounds every interaction, reset prompts included.
func Timeout(timeout time.Duration) Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, inv)
		}
	}
}

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits slash commands per user using the token bucket algorithm.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

// NewRateLimiter creates a limiter and starts its cleanup routine, which stops with ctx.
func NewRateLimiter(ctx context.Context, perSecond float64, burst int) *RateLimiter {
	limiter := &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*rateLimitClient),
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.sweep(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// sweep forgets users idle for longer than the client TTL.
func (limiter *RateLimiter) sweep(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for userID, client := range limiter.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, userID)
		}
	}
}

// reserve reports whether userID may run a command now, and if not, how long to wait.
func (limiter *RateLimiter) reserve(userID string, now time.Time) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[userID]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[userID] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware refuses slash commands over the limit with RATE_LIMITED.
func (limiter *RateLimiter) Middleware() Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) error {
			if !isCommand(inv) {
				return next(ctx, inv)
			}

			allowed, delay := limiter.reserve(inv.Actor.UserID, time.Now())
			if !allowed {
				return apperr.RateLimited(int(math.Ceil(delay.Seconds())))
			}
			return next(ctx, inv)
		}
	}
}

// # Moderation

// BlacklistChecker reports whether a user or guild is flagged.
type BlacklistChecker interface {
	Blacklisted(ctx context.Context, userID, guildID string) (bool, error)
}

// Blacklist refuses slash commands from flagged users and guilds.
//
// Store failures fail open: the command runs and the failure is logged.
func Blacklist(checker BlacklistChecker) Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) error {
			if !isCommand(inv) {
				return next(ctx, inv)
			}

			flagged, err := checker.Blacklisted(ctx, inv.Actor.UserID, inv.Actor.GuildID)
			if err != nil {
				ctxutil.GetLogger(ctx).Warn("blacklist_check_failed", slog.Any("error", err))
				return next(ctx, inv)
			}
			if flagged {
				return apperr.Blacklisted("This account or server")
			}
			return next(ctx, inv)
		}
	}
}

// # Reliability & Safety

// PanicRecovery turns a panic into an internal error carrying the stack trace.
func PanicRecovery() Middleware {
	return func(next interaction.HandlerFunc) interaction.HandlerFunc {
		return func(ctx context.Context, inv *interaction.Invocation) (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					ctxutil.GetLogger(ctx).ErrorContext(ctx, "panic_recovered",
						slog.Any("error", recovered),
						slog.String("stack", string(stackTrace[:length])),
					)
					err = apperr.Internal(fmt.Errorf("panic: %v", recovered))
				}
			}()

			return next(ctx, inv)
		}
	}
}
