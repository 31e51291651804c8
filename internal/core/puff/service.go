// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

import (
	"context"
	"log/slog"

	"github.com/budcenter/budbuddy/internal/platform/apperr"
	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/ctxutil"
)

// Service implements the puff counter use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Take adds one puff to the actor and, inside a guild, to the guild.

Description: The guild increment is a second, independent operation. Its
failure is reported in [TakeResult.GuildErr] and never undoes the user increment.

Parameters:
  - context: context.Context
  - actor: ctxutil.Actor

Returns:
  - *TakeResult: New totals
  - error: BLACKLISTED when the user is flagged, or store failures of the user increment
*/
func (service *Service) Take(context context.Context, actor ctxutil.Actor) (*TakeResult, error) {
	userPuffs, err := service.increment(context, SubjectUser, actor.UserID)
	if err != nil {
		return nil, err
	}

	result := &TakeResult{UserPuffs: userPuffs}
	if actor.GuildID == "" {
		return result, nil
	}

	guildPuffs, err := service.increment(context, SubjectGuild, actor.GuildID)
	if err != nil {
		result.GuildErr = err
		if !apperr.HasCode(err, apperr.CodeBlacklisted) {
			ctxutil.GetLogger(context).Error("puff_guild_increment_failed",
				slog.String("guild_id", actor.GuildID),
				slog.Any("error", err),
			)
		}
		return result, nil
	}

	result.GuildPuffs = &guildPuffs
	return result, nil
}

func (service *Service) increment(context context.Context, subject Subject, id string) (int64, error) {
	if err := service.repo.Ensure(context, subject, id); err != nil {
		return 0, err
	}
	return service.repo.Increment(context, subject, id)
}

// Reset sets the user's counter to zero.
func (service *Service) Reset(context context.Context, userID string) error {
	if err := service.repo.Reset(context, SubjectUser, userID); err != nil {
		return err
	}

	service.logger.Info("puff_counter_reset", slog.String("user_id", userID))
	return nil
}

// Stats returns the actor's total and, inside a guild, the guild's total.
func (service *Service) Stats(context context.Context, actor ctxutil.Actor) (*Stats, error) {
	userPuffs, err := service.repo.Puffs(context, SubjectUser, actor.UserID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{UserPuffs: userPuffs}
	if actor.GuildID != "" {
		guildPuffs, err := service.repo.Puffs(context, SubjectGuild, actor.GuildID)
		if err != nil {
			return nil, err
		}
		stats.GuildPuffs = &guildPuffs
	}

	return stats, nil
}

// Leaderboard returns the top users by puffs.
func (service *Service) Leaderboard(context context.Context) ([]LeaderboardEntry, error) {
	return service.repo.TopUsers(context, constants.LeaderboardSize)
}

// Blacklisted reports whether the user or their guild is flagged.
func (service *Service) Blacklisted(context context.Context, userID, guildID string) (bool, error) {
	return service.repo.Blacklisted(context, userID, guildID)
}
