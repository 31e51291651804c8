// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"log/slog"
	"math"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/validate"
)

// Service implements the catalog use cases behind '/search' and '/strain'.
type Service struct {
	repo   Repository
	cache  DetailCache
	logger *slog.Logger
}

// NewService wires the catalog service. A nil cache disables detail caching.
func NewService(repo Repository, cache DetailCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopDetailCache{}
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

/*
Search returns at most [constants.SearchResultCap] strains matching the filter.

Description: One extra row is requested so the result can report truncation
without a second COUNT query.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - *SearchResult: Matches ordered by ascending id
  - error: VALIDATION_ERROR for oversized input, or store failures
*/
func (service *Service) Search(context context.Context, filter Filter) (*SearchResult, error) {
	validator := &validate.Validator{}
	validator.
		MaxLenPtr("name", filter.Name, constants.MaxFilterLength).
		MaxLenPtr("flavor", filter.Flavor, constants.MaxFilterLength).
		MaxLenPtr("effect", filter.Effect, constants.MaxFilterLength).
		MaxLenPtr("ailment", filter.Ailment, constants.MaxFilterLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	rows, err := service.repo.Search(context, filter, constants.SearchResultCap+1)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Strains: rows}
	if len(rows) > constants.SearchResultCap {
		result.Strains = rows[:constants.SearchResultCap]
		result.Truncated = true
	}

	return result, nil
}

/*
Get returns the strain with the given id.

Parameters:
  - context: context.Context
  - id: int64 (as supplied by the command option)

Returns:
  - *Strain: The detail record
  - error: NOT_FOUND for unknown or out-of-range ids, or store failures
*/
func (service *Service) Get(context context.Context, id int64) (*Strain, error) {
	if id < 1 || id > math.MaxInt32 {
		return nil, ErrStrainNotFound
	}
	strainID := int32(id)

	if cached, ok := service.cache.Get(context, strainID); ok {
		return cached, nil
	}

	strain, err := service.repo.FindByID(context, strainID)
	if err != nil {
		return nil, err
	}

	service.cache.Set(context, strain)
	return strain, nil
}
