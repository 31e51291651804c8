// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budcenter/budbuddy/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed strain catalog.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Search implements [Repository].
func (repository *PostgresRepository) Search(context context.Context, filter Filter, limit int) ([]Summary, error) {
	query, args := buildSearchQuery(filter, limit)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Strain", "search_strains")
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Summary])
	if err != nil {
		return nil, dberr.Wrap(err, "Strain", "scan_strain_summary")
	}

	return summaries, nil
}

// detailQuery aggregates every tag collection into sorted, de-duplicated arrays
// so a detail card costs one round-trip.
const detailQuery = `
	SELECT
		s.id,
		s.name,
		s.description,
		s.subspecies::text,
		s.image_url,
		ARRAY(
			SELECT DISTINCT e.name
			FROM cannabis.strain_effects se
			JOIN cannabis.effects e ON se.effect_id = e.id
			WHERE se.strain_id = s.id AND e.is_positive IS TRUE
			ORDER BY e.name
		) AS positive_effects,
		ARRAY(
			SELECT DISTINCT e.name
			FROM cannabis.strain_effects se
			JOIN cannabis.effects e ON se.effect_id = e.id
			WHERE se.strain_id = s.id AND e.is_positive IS FALSE
			ORDER BY e.name
		) AS negative_effects,
		ARRAY(
			SELECT DISTINCT f.name
			FROM cannabis.strain_flavors sf
			JOIN cannabis.flavors f ON sf.flavor_id = f.id
			WHERE sf.strain_id = s.id
			ORDER BY f.name
		) AS flavors,
		ARRAY(
			SELECT DISTINCT a.name
			FROM cannabis.strain_ailments sa
			JOIN cannabis.ailments a ON sa.ailment_id = a.id
			WHERE sa.strain_id = s.id
			ORDER BY a.name
		) AS ailments
	FROM cannabis.strains s
	WHERE s.id = $1
`

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id int32) (*Strain, error) {
	strain := &Strain{}
	var subspecies *string

	err := repository.pool.QueryRow(context, detailQuery, id).Scan(
		&strain.ID,
		&strain.Name,
		&strain.Description,
		&subspecies,
		&strain.ImageURL,
		&strain.PositiveEffects,
		&strain.NegativeEffects,
		&strain.Flavors,
		&strain.Ailments,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Strain", "find_strain_by_id")
	}

	// Enum labels are validated on the way in, never passed through blindly.
	if subspecies != nil {
		parsed, err := ParseSubspecies(*subspecies)
		if err != nil {
			return nil, dberr.Wrap(err, "Strain", "parse_subspecies")
		}
		strain.Subspecies = &parsed
	}

	return strain, nil
}

// DistinctTags implements [TagSource].
func (repository *PostgresRepository) DistinctTags(context context.Context, dimension Dimension, limit int) ([]string, error) {
	rows, err := repository.pool.Query(context, buildTagQuery(dimension), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "list_"+dimension.String()+"_tags")
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "scan_"+dimension.String()+"_tag")
	}

	return values, nil
}
