// Copyright (c) 2026 BudCenter. All rights reserved.

package strain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/budcenter/budbuddy/internal/platform/constants"
	"github.com/budcenter/budbuddy/internal/platform/metrics"
)

// DetailCache keeps rendered-ready strains between '/strain' calls.
//
// Implementations never fail the caller: a broken cache behaves like a miss.
type DetailCache interface {
	Get(context context.Context, id int32) (*Strain, bool)
	Set(context context.Context, strain *Strain)
}

// NopDetailCache is used when no Redis URL is configured.
type NopDetailCache struct{}

// Get implements [DetailCache].
func (NopDetailCache) Get(context.Context, int32) (*Strain, bool) { return nil, false }

// Set implements [DetailCache].
func (NopDetailCache) Set(context.Context, *Strain) {}

// # Redis Detail Cache

// RedisDetailCache implements [DetailCache] using Redis with a TTL.
type RedisDetailCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisDetailCache creates a Redis-backed detail cache.
func NewRedisDetailCache(client *redis.Client, logger *slog.Logger) *RedisDetailCache {
	return &RedisDetailCache{client: client, ttl: constants.StrainDetailTTL, logger: logger}
}

func detailKey(id int32) string {
	return fmt.Sprintf("%s%d", constants.RedisPrefixStrainDetail, id)
}

/*
Get retrieves a cached strain.

Parameters:
  - context: context.Context
  - id: int32

Returns:
  - *Strain: The cached entry
  - bool: false on miss, expiry, or any Redis failure
*/
func (cache *RedisDetailCache) Get(context context.Context, id int32) (*Strain, bool) {
	payload, err := cache.client.Get(context, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.DetailCacheTotal.WithLabelValues("miss").Inc()
			return nil, false
		}
		metrics.DetailCacheTotal.WithLabelValues("error").Inc()
		cache.logger.Warn("redis_strain_get_failed", slog.Int("strain_id", int(id)), slog.Any("error", err))
		return nil, false
	}

	strain := &Strain{}
	if err := json.Unmarshal(payload, strain); err != nil {
		metrics.DetailCacheTotal.WithLabelValues("error").Inc()
		cache.logger.Warn("redis_strain_decode_failed", slog.Int("strain_id", int(id)), slog.Any("error", err))
		return nil, false
	}

	metrics.DetailCacheTotal.WithLabelValues("hit").Inc()
	return strain, true
}

// Set stores a strain with the configured TTL. Failures are logged only.
func (cache *RedisDetailCache) Set(context context.Context, strain *Strain) {
	payload, err := json.Marshal(strain)
	if err != nil {
		cache.logger.Warn("redis_strain_encode_failed", slog.Int("strain_id", int(strain.ID)), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, detailKey(strain.ID), payload, cache.ttl).Err(); err != nil {
		cache.logger.Warn("redis_strain_set_failed", slog.Int("strain_id", int(strain.ID)), slog.Any("error", err))
	}
}
