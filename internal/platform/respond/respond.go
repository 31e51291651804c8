// Copyright (c) 2026 BudCenter. All rights reserved.

// Package respond provides HTTP response helpers used by the ops server.
//
// # Architecture
//
// Every response of the health and readiness endpoints follows the same JSON
// envelope, so probes and dashboards can parse them without special cases.
// Slash commands never pass through here; they answer through the interaction
// package.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Status writes data in the success envelope with an explicit status code.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, SuccessEnvelope{Data: data})
}

// Error converts any Go error into a standardized JSON error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	status := StatusOf(appError.Code)
	if status >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "ops_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetTraceID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, status, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// StatusOf maps an error code to its HTTP status.
func StatusOf(code string) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeForbidden, apperr.CodeBlacklisted:
		return http.StatusForbidden
	case apperr.CodeValidation:
		return http.StatusUnprocessableEntity
	case apperr.CodeRateLimited:
		return http.StatusTooManyRequests
	case apperr.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
