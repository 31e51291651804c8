// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory [Repository].
type fakeRepository struct {
	summaries []Summary
	strains   map[int32]*Strain
	tags      map[Dimension][]string

	searchErr error
	tagErr    error

	lastFilter  Filter
	lastLimit   int
	searchCalls atomic.Int32
	findCalls   atomic.Int32
	tagCalls    atomic.Int32

	// release, when set, blocks DistinctTags until closed.
	release chan struct{}
}

func (repository *fakeRepository) Search(_ context.Context, filter Filter, limit int) ([]Summary, error) {
	repository.searchCalls.Add(1)
	repository.lastFilter = filter
	repository.lastLimit = limit
	if repository.searchErr != nil {
		return nil, repository.searchErr
	}
	if len(repository.summaries) > limit {
		return repository.summaries[:limit], nil
	}
	return repository.summaries, nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id int32) (*Strain, error) {
	repository.findCalls.Add(1)
	strain, ok := repository.strains[id]
	if !ok {
		return nil, ErrStrainNotFound
	}
	return strain, nil
}

func (repository *fakeRepository) DistinctTags(_ context.Context, dimension Dimension, limit int) ([]string, error) {
	repository.tagCalls.Add(1)
	if repository.release != nil {
		<-repository.release
	}
	if repository.tagErr != nil {
		return nil, repository.tagErr
	}
	values := repository.tags[dimension]
	if len(values) > limit {
		values = values[:limit]
	}
	return values, nil
}

// memoryCache is an in-memory [DetailCache].
type memoryCache struct {
	mu      sync.Mutex
	entries map[int32]*Strain
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[int32]*Strain)}
}

func (cache *memoryCache) Get(_ context.Context, id int32) (*Strain, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	strain, ok := cache.entries[id]
	return strain, ok
}

func (cache *memoryCache) Set(_ context.Context, strain *Strain) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[strain.ID] = strain
	cache.sets++
}

func summaries(count int) []Summary {
	rows := make([]Summary, 0, count)
	for i := 1; i <= count; i++ {
		rows = append(rows, Summary{ID: int32(i), Name: "Strain"})
	}
	return rows
}
