// Copyright (c) 2026 BudCenter. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/constants"
)

func newTestServer(checks ...Check) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := NewHealthHandlers(checks, logger)
	return NewServer("0", logger, Handlers{Liveness: liveness, Readiness: readiness})
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

type readyPayload struct {
	Data struct {
		Status string        `json:"status"`
		Checks []CheckResult `json:"checks"`
	} `json:"data"`
}

func healthy(context.Context) error { return nil }

func TestLiveness(t *testing.T) {
	server := newTestServer(Check{Name: "postgres", Probe: func(context.Context) error { return errors.New("down") }})

	recorder := get(t, server, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestReadiness verifies dependency aggregation on /ready.

Scenarios:
  - Every dependency up answers 200 "ready".
  - Any dependency down answers 503 "degraded" with the failing check named.
  - Results keep the declared check order.
*/
func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantState  string
		wantFailed string
	}{
		{
			name: "All healthy",
			checks: []Check{
				{Name: "postgres", Probe: healthy},
				{Name: "redis", Probe: healthy},
				{Name: "gateway", Probe: healthy},
			},
			wantStatus: http.StatusOK,
			wantState:  "ready",
		},
		{
			name: "Gateway not ready",
			checks: []Check{
				{Name: "postgres", Probe: healthy},
				{Name: "gateway", Probe: func(context.Context) error { return errors.New("discord: gateway not ready") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantFailed: "gateway",
		},
		{
			name:       "No checks",
			wantStatus: http.StatusOK,
			wantState:  "ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(t, newTestServer(tt.checks...), "/ready")
			require.Equal(t, tt.wantStatus, recorder.Code)

			var payload readyPayload
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
			assert.Equal(t, tt.wantState, payload.Data.Status)
			require.Len(t, payload.Data.Checks, len(tt.checks))

			for i, result := range payload.Data.Checks {
				assert.Equal(t, tt.checks[i].Name, result.Name)
				assert.Equal(t, result.Name != tt.wantFailed, result.IsOK)
				if !result.IsOK {
					assert.NotEmpty(t, result.Error)
				}
			}
		})
	}
}

func TestReadiness_ProbeDeadline(t *testing.T) {
	var deadlineSet bool
	server := newTestServer(Check{Name: "redis", Probe: func(ctx context.Context) error {
		_, deadlineSet = ctx.Deadline()
		return nil
	}})

	get(t, server, "/ready")
	assert.True(t, deadlineSet)
}

func TestMetrics(t *testing.T) {
	recorder := get(t, newTestServer(), "/metrics")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "go_goroutines")
}
