// Copyright (c) 2026 BudCenter. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the user while classifying the error type.
//
// resource names the entity for not-found replies, action names the failing
// operation for the logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	cause := fmt.Errorf("postgres: %s: %w", action, err)

	// 2. Connectivity problems surface as unavailability
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsOperatorIntervention(pgErr.Code) {
			return apperr.ServiceUnavailable(cause)
		}
		return apperr.Internal(cause)
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return apperr.ServiceUnavailable(cause)
	}

	// 3. Unknown query errors become internal errors
	return apperr.Internal(cause)
}
