// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

import "context"

// # Counter Data Access

// Repository defines the data access contract for puff counters.
//
// Every mutation is a single server-side statement, so concurrent invocations
// never lose updates.
type Repository interface {

	/*
		Ensure creates the counter row if it does not exist yet.

		Parameters:
		  - context: context.Context
		  - subject: Subject
		  - id: string (Discord snowflake)

		Returns:
		  - error: Database failures
	*/
	Ensure(context context.Context, subject Subject, id string) error

	/*
		Increment adds one puff and returns the new total.

		Parameters:
		  - context: context.Context
		  - subject: Subject
		  - id: string

		Returns:
		  - int64: The new total
		  - error: apperr BLACKLISTED when the subject is flagged, or database failures
	*/
	Increment(context context.Context, subject Subject, id string) (int64, error)

	// Reset sets a counter to zero. A missing row is not an error.
	Reset(context context.Context, subject Subject, id string) error

	// Puffs returns a counter's total, zero when the row does not exist.
	Puffs(context context.Context, subject Subject, id string) (int64, error)

	/*
		TopUsers returns the highest user counters.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []LeaderboardEntry: Ranked from 1, blacklisted users excluded
		  - error: Database failures
	*/
	TopUsers(context context.Context, limit int) ([]LeaderboardEntry, error)

	// Blacklisted reports whether the user, or the guild when guildID is set, is flagged.
	Blacklisted(context context.Context, userID, guildID string) (bool, error)
}
