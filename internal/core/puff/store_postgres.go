// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/database/schema"
	"github.com/budcenter/budbuddy/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed counter store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Ensure implements [Repository].
func (repository *PostgresRepository) Ensure(context context.Context, subject Subject, id string) error {
	table := subject.table()
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING`, table.Table, table.ID, table.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "Counter", "ensure_"+subject.String())
	}
	return nil
}

// Increment implements [Repository].
//
// The blacklist check and the increment are one statement: a flagged row is
// simply not matched, and no row comes back.
func (repository *PostgresRepository) Increment(context context.Context, subject Subject, id string) (int64, error) {
	table := subject.table()
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + 1, %s = now()
		WHERE %s = $1 AND NOT %s
		RETURNING %s`,
		table.Table,
		table.Puffs, table.Puffs, table.UpdatedAt,
		table.ID, table.Blacklisted,
		table.Puffs,
	)

	var puffs int64
	err := repository.pool.QueryRow(context, query, id).Scan(&puffs)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.Blacklisted(subjectLabel(subject))
	}
	if err != nil {
		return 0, dberr.Wrap(err, "Counter", "increment_"+subject.String())
	}

	return puffs, nil
}

// Reset implements [Repository].
func (repository *PostgresRepository) Reset(context context.Context, subject Subject, id string) error {
	table := subject.table()
	query := fmt.Sprintf(`UPDATE %s SET %s = 0, %s = now() WHERE %s = $1`, table.Table, table.Puffs, table.UpdatedAt, table.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "Counter", "reset_"+subject.String())
	}
	return nil
}

// Puffs implements [Repository].
func (repository *PostgresRepository) Puffs(context context.Context, subject Subject, id string) (int64, error) {
	table := subject.table()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, table.Puffs, table.Table, table.ID)

	var puffs int64
	err := repository.pool.QueryRow(context, query, id).Scan(&puffs)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, dberr.Wrap(err, "Counter", "get_"+subject.String()+"_puffs")
	}

	return puffs, nil
}

// TopUsers implements [Repository].
func (repository *PostgresRepository) TopUsers(context context.Context, limit int) ([]LeaderboardEntry, error) {
	users := schema.BotUser
	query := fmt.Sprintf(`
		SELECT (row_number() OVER (ORDER BY %s DESC, %s ASC))::int, %s, %s
		FROM %s
		WHERE NOT %s AND %s > 0
		ORDER BY %s DESC, %s ASC
		LIMIT $1`,
		users.Puffs, users.ID, users.ID, users.Puffs,
		users.Table,
		users.Blacklisted, users.Puffs,
		users.Puffs, users.ID,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Counter", "list_top_users")
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[LeaderboardEntry])
	if err != nil {
		return nil, dberr.Wrap(err, "Counter", "scan_leaderboard_entry")
	}

	return entries, nil
}

// Blacklisted implements [Repository].
func (repository *PostgresRepository) Blacklisted(context context.Context, userID, guildID string) (bool, error) {
	users, guilds := schema.BotUser, schema.BotGuild
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s)
			OR EXISTS (SELECT 1 FROM %s WHERE %s = $2 AND %s)`,
		users.Table, users.ID, users.Blacklisted,
		guilds.Table, guilds.ID, guilds.Blacklisted,
	)

	var flagged bool
	if err := repository.pool.QueryRow(context, query, userID, guildID).Scan(&flagged); err != nil {
		return false, dberr.Wrap(err, "Counter", "check_blacklist")
	}

	return flagged, nil
}

func subjectLabel(subject Subject) string {
	if subject == SubjectGuild {
		return "This server"
	}
	return "Your account"
}
