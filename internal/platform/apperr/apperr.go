// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package apperr defines the centralized error handling framework for BudBuddy.

It provides a rich error type that bridges the gap between low-level storage
errors and the replies a user sees in chat.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-safe message.
  - Expected errors (not found, blacklisted, validation, rate limited) are answered
    where they occur and are never escalated to the operations channel.
  - Everything else is treated as unexpected and reaches the top-level error reporter.

Every error that leaves the service layer should be wrapped as an [AppError] so the
dispatcher can decide how to answer it.
*/
package apperr

import (
	"errors"
	"fmt"
)

// Machine-readable error codes.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeBlacklisted        = "BLACKLISTED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for BudBuddy.
//
// # Security
//
// The Cause field is for server-side logging only and is never shown in chat
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR replies.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the command option name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Expected reports whether the error is a normal outcome that is answered
// directly instead of being escalated.
func (e *AppError) Expected() bool {
	switch e.Code {
	case CodeNotFound, CodeForbidden, CodeBlacklisted, CodeValidation, CodeRateLimited:
		return true
	}
	return false
}

// # Expected Outcomes

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Strain") // Returns "Strain not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// Forbidden creates a FORBIDDEN [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: msg,
	}
}

// Blacklisted creates a BLACKLISTED [AppError] for actors flagged by moderation.
func Blacklisted(subject string) *AppError {
	return &AppError{
		Code:    CodeBlacklisted,
		Message: subject + " is blacklisted",
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Details: details,
	}
}

// RateLimited creates a RATE_LIMITED [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: fmt.Sprintf("Slow down! Try again in %ds.", retryAfterSeconds),
	}
}

// # Unexpected Failures

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// ServiceUnavailable creates a SERVICE_UNAVAILABLE [AppError] for store outages.
func ServiceUnavailable(cause error) *AppError {
	return &AppError{
		Code:    CodeServiceUnavailable,
		Message: "The database is unavailable right now",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
