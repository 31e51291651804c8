// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestSuggestions_SingleFetchUnderConcurrency verifies that concurrent first
calls share one fetch and observe the same values.
*/
func TestSuggestions_SingleFetchUnderConcurrency(t *testing.T) {
	repository := &fakeRepository{
		tags:    map[Dimension][]string{DimensionFlavor: {"Berry", "Lemon", "Lime"}},
		release: make(chan struct{}),
	}
	suggestions := NewSuggestions(repository, discardLogger())

	const callers = 32
	results := make([][]string, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = suggestions.Suggest(context.Background(), DimensionFlavor, "")
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(repository.release)
	wg.Wait()

	assert.Equal(t, int32(1), repository.tagCalls.Load())
	for _, result := range results {
		assert.Equal(t, []string{"Berry", "Lemon", "Lime"}, result)
	}
}

/*
TestSuggestions_PrefixMatching covers case-insensitive "starts with" matching.
*/
func TestSuggestions_PrefixMatching(t *testing.T) {
	repository := &fakeRepository{
		tags: map[Dimension][]string{
			DimensionEffect: {"Aroused", "Creative", "Energetic", "Euphoric", "Happy", "euphoric"},
		},
	}
	suggestions := NewSuggestions(repository, discardLogger())

	tests := []struct {
		name     string
		prefix   string
		expected []string
	}{
		{"empty_prefix_returns_all", "", []string{"Aroused", "Creative", "Energetic", "Euphoric", "Happy", "euphoric"}},
		{"lowercase_prefix", "eu", []string{"Euphoric", "euphoric"}},
		{"uppercase_prefix", "EN", []string{"Energetic"}},
		{"full_value", "happy", []string{"Happy"}},
		{"shared_first_letter_keeps_order", "e", []string{"Energetic", "Euphoric", "euphoric"}},
		{"no_match", "zz", []string{}},
		{"prefix_longer_than_value", "happy days", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestions.Suggest(context.Background(), DimensionEffect, tt.prefix))
		})
	}

	assert.Equal(t, int32(1), repository.tagCalls.Load())
}

/*
TestSuggestions_UnicodeFolding matches prefixes across Unicode case pairs.
*/
func TestSuggestions_UnicodeFolding(t *testing.T) {
	repository := &fakeRepository{
		tags: map[Dimension][]string{DimensionFlavor: {"Ämber", "Apple", "Straße"}},
	}
	suggestions := NewSuggestions(repository, discardLogger())

	assert.Equal(t, []string{"Ämber"}, suggestions.Suggest(context.Background(), DimensionFlavor, "äm"))
	assert.Equal(t, []string{"Straße"}, suggestions.Suggest(context.Background(), DimensionFlavor, "STRASS"))
}

/*
TestSuggestions_RetryAfterFailure checks that a failed fetch yields nothing
now and is retried by the next call.
*/
func TestSuggestions_RetryAfterFailure(t *testing.T) {
	repository := &fakeRepository{
		tags:   map[Dimension][]string{DimensionAilment: {"Insomnia", "Stress"}},
		tagErr: errors.New("connection refused"),
	}
	suggestions := NewSuggestions(repository, discardLogger())

	first := suggestions.Suggest(context.Background(), DimensionAilment, "")
	require.NotNil(t, first)
	assert.Empty(t, first)

	repository.tagErr = nil

	assert.Equal(t, []string{"Stress"}, suggestions.Suggest(context.Background(), DimensionAilment, "s"))
	assert.Equal(t, int32(2), repository.tagCalls.Load())

	// Once populated, the snapshot is kept.
	suggestions.Suggest(context.Background(), DimensionAilment, "i")
	assert.Equal(t, int32(2), repository.tagCalls.Load())
}

/*
TestSuggestions_DimensionsAreIndependent ensures each dimension has its own slot.
*/
func TestSuggestions_DimensionsAreIndependent(t *testing.T) {
	repository := &fakeRepository{
		tags: map[Dimension][]string{
			DimensionFlavor: {"Mint"},
			DimensionEffect: {"Hungry"},
		},
	}
	suggestions := NewSuggestions(repository, discardLogger())

	assert.Equal(t, []string{"Mint"}, suggestions.Suggest(context.Background(), DimensionFlavor, ""))
	assert.Equal(t, []string{"Hungry"}, suggestions.Suggest(context.Background(), DimensionEffect, ""))
	assert.Equal(t, int32(2), repository.tagCalls.Load())
}

/*
TestSuggestions_CallerCannotMutateSnapshot guards the cached values.
*/
func TestSuggestions_CallerCannotMutateSnapshot(t *testing.T) {
	repository := &fakeRepository{tags: map[Dimension][]string{DimensionFlavor: {"Mint", "Pine"}}}
	suggestions := NewSuggestions(repository, discardLogger())

	values := suggestions.Suggest(context.Background(), DimensionFlavor, "")
	values[0] = "Tampered"

	assert.Equal(t, []string{"Mint", "Pine"}, suggestions.Suggest(context.Background(), DimensionFlavor, ""))
}

/*
TestSuggestions_Invalidate forces a refetch.
*/
func TestSuggestions_Invalidate(t *testing.T) {
	repository := &fakeRepository{tags: map[Dimension][]string{DimensionFlavor: {"Mint"}}}
	suggestions := NewSuggestions(repository, discardLogger())

	suggestions.Suggest(context.Background(), DimensionFlavor, "")
	suggestions.Invalidate(DimensionFlavor)
	suggestions.Suggest(context.Background(), DimensionFlavor, "")

	assert.Equal(t, int32(2), repository.tagCalls.Load())
}

/*
TestSuggestions_CancelledCallerDoesNotPoisonFetch shows the shared fetch
outlives a caller whose context is already done.
*/
func TestSuggestions_CancelledCallerDoesNotPoisonFetch(t *testing.T) {
	repository := &fakeRepository{tags: map[Dimension][]string{DimensionFlavor: {"Mint"}}}
	suggestions := NewSuggestions(repository, discardLogger())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, []string{"Mint"}, suggestions.Suggest(cancelled, DimensionFlavor, ""))
}
