// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryRepository is an in-memory [Repository] whose mutations are atomic
// under one mutex, like the single-statement SQL they stand in for.
type memoryRepository struct {
	mu          sync.Mutex
	counters    map[Subject]map[string]int64
	blacklisted map[Subject]map[string]bool

	incrementErr map[Subject]error
	resetErr     error
	resets       int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		counters:     map[Subject]map[string]int64{SubjectUser: {}, SubjectGuild: {}},
		blacklisted:  map[Subject]map[string]bool{SubjectUser: {}, SubjectGuild: {}},
		incrementErr: map[Subject]error{},
	}
}

func (repository *memoryRepository) Ensure(_ context.Context, subject Subject, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.counters[subject][id]; !ok {
		repository.counters[subject][id] = 0
	}
	return nil
}

func (repository *memoryRepository) Increment(_ context.Context, subject Subject, id string) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if err := repository.incrementErr[subject]; err != nil {
		return 0, err
	}
	if repository.blacklisted[subject][id] {
		return 0, apperr.Blacklisted(subjectLabel(subject))
	}
	repository.counters[subject][id]++
	return repository.counters[subject][id], nil
}

func (repository *memoryRepository) Reset(_ context.Context, subject Subject, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.resetErr != nil {
		return repository.resetErr
	}
	repository.resets++
	if _, ok := repository.counters[subject][id]; ok {
		repository.counters[subject][id] = 0
	}
	return nil
}

func (repository *memoryRepository) Puffs(_ context.Context, subject Subject, id string) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.counters[subject][id], nil
}

func (repository *memoryRepository) TopUsers(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entries := []LeaderboardEntry{}
	for id, count := range repository.counters[SubjectUser] {
		if count > 0 && !repository.blacklisted[SubjectUser][id] {
			entries = append(entries, LeaderboardEntry{UserID: id, Puffs: count})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Puffs != entries[j].Puffs {
			return entries[i].Puffs > entries[j].Puffs
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (repository *memoryRepository) Blacklisted(_ context.Context, userID, guildID string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.blacklisted[SubjectUser][userID] || repository.blacklisted[SubjectGuild][guildID], nil
}

func (repository *memoryRepository) puffs(subject Subject, id string) int64 {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.counters[subject][id]
}

func (repository *memoryRepository) set(subject Subject, id string, puffs int64) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.counters[subject][id] = puffs
}

func (repository *memoryRepository) resetCount() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.resets
}
