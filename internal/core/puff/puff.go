// Copyright (c) 2026 BudCenter. All rights reserved.

/*
Package puff implements the puff counters and their two-step reset.

Counters exist per user and per guild. '/puff take' advances the caller's
counter and, inside a guild, the guild's counter as a second, separately
reported operation. Blacklisted subjects are refused without any mutation.

Reset flow:

	Prompted ──confirm──▶ Confirmed (counter set to zero)
	    │ ├────cancel───▶ Canceled
	    │ └───30 s──────▶ TimedOut
	    ▼
	(signals from other users are acknowledged and ignored)

Only the first accepted signal is processed. See [Prompts].
*/
package puff

import (
	"github.com/budcenter/budbuddy/internal/platform/database/schema"
)

// Subject selects the user or guild counter table.
type Subject int

const (
	SubjectUser Subject = iota
	SubjectGuild
)

// String returns the log label of the subject.
func (s Subject) String() string {
	if s == SubjectGuild {
		return "guild"
	}
	return "user"
}

func (s Subject) table() schema.CounterTable {
	if s == SubjectGuild {
		return schema.BotGuild
	}
	return schema.BotUser
}

// LeaderboardEntry is one row of '/puff leaderboard'.
type LeaderboardEntry struct {
	Rank   int
	UserID string
	Puffs  int64
}

// TakeResult reports both increments of a '/puff take'.
type TakeResult struct {
	// UserPuffs is the caller's new total.
	UserPuffs int64

	// GuildPuffs is the guild's new total, nil outside a guild or when GuildErr is set.
	GuildPuffs *int64

	// GuildErr is the outcome of the guild increment. It never undoes the user increment.
	GuildErr error
}

// Stats is the answer to '/puff stats'.
type Stats struct {
	UserPuffs  int64
	GuildPuffs *int64
}

// # Reset State Machine

// ResetState is the state of a reset prompt.
type ResetState int

const (
	ResetPrompted ResetState = iota
	ResetConfirmed
	ResetCanceled
	ResetTimedOut
)

// String returns the metrics label of the state.
func (s ResetState) String() string {
	switch s {
	case ResetConfirmed:
		return "confirmed"
	case ResetCanceled:
		return "canceled"
	case ResetTimedOut:
		return "timed_out"
	}
	return "prompted"
}

// Terminal reports whether no further transition is possible.
func (s ResetState) Terminal() bool {
	return s != ResetPrompted
}

// ResetChoice is a button a user can press on a reset prompt.
type ResetChoice string

const (
	ChoiceConfirm ResetChoice = "confirm"
	ChoiceCancel  ResetChoice = "cancel"
)

// ParseResetChoice maps a custom id part to a [ResetChoice].
func ParseResetChoice(raw string) (ResetChoice, bool) {
	switch ResetChoice(raw) {
	case ChoiceConfirm:
		return ChoiceConfirm, true
	case ChoiceCancel:
		return ChoiceCancel, true
	}
	return "", false
}

// state returns the terminal state a choice leads to.
func (c ResetChoice) state() ResetState {
	if c == ChoiceConfirm {
		return ResetConfirmed
	}
	return ResetCanceled
}
