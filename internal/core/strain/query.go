// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"fmt"
	"strings"

	"github.com/budcenter/budbuddy/internal/platform/database/schema"
)

// likeEscaper neutralises LIKE wildcards so the name filter is a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

/*
buildSearchQuery composes the '/search' statement for a filter.

Description: Every absent filter contributes neither a condition nor an argument,
so an entry with no tags in a dimension is only excluded when that dimension is
filtered. Tag filters are EXISTS sub-queries rather than outer joins: a strain
with several matching tags still yields one row, and a strain with none can never
satisfy a tag filter through a NULL join row.

Parameters:
  - filter: Filter
  - limit: int (rows to fetch; callers ask for one more than they show)

Returns:
  - string: The SQL statement
  - []any: Positional arguments
*/
func buildSearchQuery(filter Filter, limit int) (string, []any) {
	var queryBuilder strings.Builder
	var conditions []string
	var args []any
	argID := 1

	strains := schema.CannabisStrain

	queryBuilder.WriteString(fmt.Sprintf("SELECT s.%s, s.%s FROM %s s", strains.ID, strains.Name, strains.Table))

	// Name Filtering (literal, case-insensitive substring)
	if filter.Name != nil {
		conditions = append(conditions, fmt.Sprintf(`s.%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`, strains.Name, argID))
		args = append(args, likeEscaper.Replace(*filter.Name))
		argID++
	}

	// Subspecies Filtering
	if filter.Subspecies != nil {
		conditions = append(conditions, fmt.Sprintf("s.%s = $%d::%s", strains.Subspecies, argID, schema.SubspeciesType))
		args = append(args, filter.Subspecies.DBValue())
		argID++
	}

	// Tag Filtering (one EXISTS per filtered dimension)
	tagFilters := []struct {
		dimension Dimension
		value     *string
	}{
		{DimensionFlavor, filter.Flavor},
		{DimensionEffect, filter.Effect},
		{DimensionAilment, filter.Ailment},
	}

	for _, tagFilter := range tagFilters {
		if tagFilter.value == nil {
			continue
		}

		tags, join := tagFilter.dimension.tables()
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s j JOIN %s t ON t.%s = j.%s WHERE j.%s = s.%s AND lower(t.%s) = lower($%d))",
			join.Table, tags.Table, tags.ID, join.TagID, join.StrainID, strains.ID, tags.Name, argID,
		))
		args = append(args, *tagFilter.value)
		argID++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	// Ordering and cap
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.%s ASC LIMIT $%d", strains.ID, argID))
	args = append(args, limit)

	return queryBuilder.String(), args
}

// buildTagQuery composes the autocomplete snapshot statement for a dimension.
func buildTagQuery(dimension Dimension) string {
	tags, _ := dimension.tables()
	return fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s ASC LIMIT $1`, tags.Name, tags.Table, tags.Name)
}
