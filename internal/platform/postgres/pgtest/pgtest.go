// Copyright (c) 2026 BudCenter. All rights reserved.

// Package pgtest opens a migrated PostgreSQL pool for integration tests.
//
// Tests using it are skipped unless BUDBUDDY_TEST_DATABASE_URL points at a
// disposable database: tables are truncated between tests.
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/budcenter/budbuddy/internal/platform/migration"
	"github.com/budcenter/budbuddy/internal/platform/postgres"
)

// EnvDatabaseURL names the variable that enables integration tests.
const EnvDatabaseURL = "BUDBUDDY_TEST_DATABASE_URL"

// Open returns a pool over a freshly migrated and truncated database.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping PostgreSQL integration test", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, migration.RunUp(dsn, migrationsPath(t), logger))

	pool, err := postgres.NewPool(context.Background(), dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		TRUNCATE
			cannabis.strain_flavors, cannabis.strain_effects, cannabis.strain_ailments,
			cannabis.flavors, cannabis.effects, cannabis.ailments, cannabis.strains,
			budbuddy.users, budbuddy.guilds
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

// migrationsPath locates data/migrations relative to this file.
func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
