// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import "context"

// # Catalog Data Access

// Repository defines the data access contract for the strain catalog.
type Repository interface {

	/*
		Search returns strains matching every non-nil field of the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter (nil fields impose no constraint)
		  - limit: int (maximum rows returned)

		Returns:
		  - []Summary: Distinct matches ordered by ascending id
		  - error: Database retrieval failures
	*/
	Search(context context.Context, filter Filter, limit int) ([]Summary, error)

	/*
		FindByID returns one strain with its tag collections.

		Parameters:
		  - context: context.Context
		  - id: int32

		Returns:
		  - *Strain: The hydrated entry
		  - error: apperr NOT_FOUND when no strain has the id
	*/
	FindByID(context context.Context, id int32) (*Strain, error)

	TagSource
}

// TagSource supplies the distinct values of a tag dimension.
type TagSource interface {

	/*
		DistinctTags returns the distinct values of a dimension sorted ascending.

		Parameters:
		  - context: context.Context
		  - dimension: Dimension
		  - limit: int

		Returns:
		  - []string: At most limit values
		  - error: Database retrieval failures
	*/
	DistinctTags(context context.Context, dimension Dimension, limit int) ([]string, error)
}
