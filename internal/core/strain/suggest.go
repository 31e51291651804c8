// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/metrics"
)

// suggestionFetchTimeout bounds a snapshot fetch independently of the
// autocomplete request that triggered it.
const suggestionFetchTimeout = 5 * time.Second

// Suggestions answers autocomplete requests for the tag filters of '/search'.
//
// # Population
//
// Each [Dimension] is fetched on first use and kept for the process lifetime.
// Concurrent first calls share one fetch through a singleflight group; the slot
// is re-checked inside the flight so a caller arriving just after a fetch
// finished does not start another one. A failed fetch answers its callers with
// no suggestions and leaves the slot empty, so the next call retries.
//
// # Concurrency
//
// Safe for concurrent use. Snapshots are immutable once stored.
type Suggestions struct {
	source TagSource
	limit  int
	logger *slog.Logger

	flights singleflight.Group

	mu        sync.RWMutex
	snapshots map[Dimension]*snapshot
}

// NewSuggestions creates an empty suggestion cache over a tag source.
func NewSuggestions(source TagSource, logger *slog.Logger) *Suggestions {
	return &Suggestions{
		source:    source,
		limit:     constants.SuggestionFetchLimit,
		logger:    logger,
		snapshots: make(map[Dimension]*snapshot),
	}
}

/*
Suggest returns the cached values of a dimension that start with prefix.

Description: Matching is a case-insensitive "starts with" using Unicode case
folding. An empty prefix returns the whole snapshot. Results keep the snapshot
order (ascending, as fetched).

Parameters:
  - context: context.Context of the autocomplete request
  - dimension: Dimension
  - prefix: string (what the user has typed so far)

Returns:
  - []string: A fresh slice the caller may modify; empty when nothing matches
*/
func (suggestions *Suggestions) Suggest(context context.Context, dimension Dimension, prefix string) []string {
	snap := suggestions.load(context, dimension)
	if snap == nil {
		return []string{}
	}

	if prefix == "" {
		return slices.Clone(snap.values)
	}

	return snap.match(fold(prefix))
}

// Invalidate drops the snapshot of a dimension; the next call refetches it.
func (suggestions *Suggestions) Invalidate(dimension Dimension) {
	suggestions.mu.Lock()
	defer suggestions.mu.Unlock()
	delete(suggestions.snapshots, dimension)
}

func (suggestions *Suggestions) cached(dimension Dimension) *snapshot {
	suggestions.mu.RLock()
	defer suggestions.mu.RUnlock()
	return suggestions.snapshots[dimension]
}

// load returns the snapshot of a dimension, populating it at most once at a time.
func (suggestions *Suggestions) load(ctx context.Context, dimension Dimension) *snapshot {
	if snap := suggestions.cached(dimension); snap != nil {
		return snap
	}

	result, _, _ := suggestions.flights.Do(dimension.String(), func() (any, error) {
		if snap := suggestions.cached(dimension); snap != nil {
			return snap, nil
		}

		// The fetch is shared by every waiting caller, so one caller giving up must not cancel it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), suggestionFetchTimeout)
		defer cancel()

		values, err := suggestions.source.DistinctTags(fetchCtx, dimension, suggestions.limit)
		if err != nil {
			metrics.SuggestionFetchesTotal.WithLabelValues(dimension.String(), "error").Inc()
			suggestions.logger.Warn("suggestions_fetch_failed",
				slog.String("dimension", dimension.String()),
				slog.Any("error", err),
			)
			return (*snapshot)(nil), err
		}

		snap := newSnapshot(values)

		suggestions.mu.Lock()
		suggestions.snapshots[dimension] = snap
		suggestions.mu.Unlock()

		metrics.SuggestionFetchesTotal.WithLabelValues(dimension.String(), "ok").Inc()
		suggestions.logger.Debug("suggestions_populated",
			slog.String("dimension", dimension.String()),
			slog.Int("count", len(values)),
		)
		return snap, nil
	})

	snap, _ := result.(*snapshot)
	return snap
}

// # Snapshot

// snapshot is an immutable, ordered list of values plus a folded-prefix index.
type snapshot struct {
	values []string

	// index maps a folded value to the positions of the values that fold to it.
	index *patricia.Trie
}

func newSnapshot(values []string) *snapshot {
	index := patricia.NewTrie()

	for position, value := range values {
		key := patricia.Prefix(fold(value))
		if existing, ok := index.Get(key).([]int); ok {
			index.Set(key, append(existing, position))
			continue
		}
		index.Insert(key, []int{position})
	}

	return &snapshot{values: slices.Clone(values), index: index}
}

// match returns the values whose folded form starts with foldedPrefix, in snapshot order.
func (snap *snapshot) match(foldedPrefix string) []string {
	var positions []int

	_ = snap.index.VisitSubtree(patricia.Prefix(foldedPrefix), func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})

	slices.Sort(positions)

	matches := make([]string, 0, len(positions))
	for _, position := range positions {
		matches = append(matches, snap.values[position])
	}
	return matches
}

// fold applies Unicode case folding. A Caser is stateful, so each call gets its own.
func fold(value string) string {
	return cases.Fold().String(value)
}
