// Copyright (c) 2026 BudCenter. All rights reserved.

// Package api serves the ops endpoints: liveness, readiness and Prometheus metrics.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/respond"
)

// Check is one dependency probed by /ready.
type Check struct {
	// Name identifies the dependency in the response ("postgres", "redis", "gateway").
	Name string

	// Probe returns nil when the dependency is usable.
	Probe func(ctx context.Context) error
}

// CheckResult is the outcome of one [Check].
type CheckResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	checks []Check
	logger *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(checks []Check, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{checks: checks, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
//
// Checks run concurrently, each bounded by [constants.ReadinessCheckTimeout].
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]CheckResult, len(handler.checks))

	var group errgroup.Group
	for i, check := range handler.checks {
		group.Go(func() error {
			ctx, cancel := context.WithTimeout(request.Context(), constants.ReadinessCheckTimeout)
			defer cancel()

			results[i] = CheckResult{Name: check.Name, IsOK: true}
			if err := check.Probe(ctx); err != nil {
				results[i].IsOK = false
				results[i].Error = err.Error()
				handler.logger.Error("readiness_check_failed", slog.String("dependency", check.Name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = group.Wait()

	responseStatus := "ready"
	httpStatus := http.StatusOK
	for _, result := range results {
		if !result.IsOK {
			responseStatus = "degraded"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	respond.Status(writer, httpStatus, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}
