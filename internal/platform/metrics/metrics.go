// Copyright (c) 2026 BudCenter. All rights reserved.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts finished command invocations by outcome
	// ("ok", "expected", "error", "rate_limited", "blacklisted").
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budbuddy_commands_total",
		Help: "Command invocations by command name and outcome.",
	}, []string{"command", "outcome"})

	// CommandDuration observes command latency in seconds.
	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "budbuddy_command_duration_seconds",
		Help:    "Command handling latency.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 35},
	}, []string{"command"})

	// SuggestionFetchesTotal counts snapshot fetches per tag dimension and result.
	SuggestionFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budbuddy_suggestion_fetches_total",
		Help: "Autocomplete snapshot fetches by dimension and result.",
	}, []string{"dimension", "result"})

	// DetailCacheTotal counts strain card cache lookups ("hit", "miss", "error").
	DetailCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budbuddy_strain_cache_lookups_total",
		Help: "Strain detail cache lookups by result.",
	}, []string{"result"})

	// ResetPromptsTotal counts reset prompts by terminal state.
	ResetPromptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budbuddy_puff_reset_prompts_total",
		Help: "Puff reset prompts by terminal state.",
	}, []string{"state"})
)
