// Copyright (c) 2026 BudCenter. All rights reserved.

package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
	"github.com/budcenter/budbuddy/internal/platform/respond"
	"github.com/budcenter/budbuddy/pkg/uuidv7"
)

/*
TestRequestID verifies correlation id handling.

Scenarios:
  - A missing header gets a fresh UUIDv7.
  - A well-formed header is kept.
  - A malformed header is replaced.
*/
func TestRequestID(t *testing.T) {
	existing := uuidv7.New()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "Missing header", header: ""},
		{name: "Valid header", header: existing, keep: true},
		{name: "Malformed header", header: "not-an-id\nX-Injected: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = ctxutil.GetTraceID(request.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderXRequestID, tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.True(t, uuidv7.Valid(seen))
			assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
			}
		})
	}
}

func TestStructuredLogger_RecordsStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var injected bool
	handler := StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context()) != slog.Default()
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.True(t, injected)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("probe exploded")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeInternal, envelope.Code)
	assert.NotContains(t, envelope.Error, "probe exploded")
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "Real IP header", headers: map[string]string{"X-Real-IP": "10.0.0.1"}, remote: "192.0.2.1:4000", want: "10.0.0.1"},
		{name: "Forwarded chain", headers: map[string]string{"X-Forwarded-For": "10.0.0.2, 10.0.0.3"}, remote: "192.0.2.1:4000", want: "10.0.0.2"},
		{name: "Remote address", remote: "192.0.2.1:4000", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/health", nil)
			request.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, RealIP(request))
		})
	}
}
