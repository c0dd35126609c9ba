// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kahani/internal/platform/constants"
)

// RedisSessions implements [SessionStore]. Each slot expires after
// [constants.PlaySessionTTL] without a new play.
type RedisSessions struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisSessions creates a new Redis-backed SessionStore.
func NewRedisSessions(client redis.UniversalClient) *RedisSessions {
	return &RedisSessions{client: client, ttl: constants.PlaySessionTTL}
}

func (sessions *RedisSessions) SetCurrent(ctx context.Context, userID, historyID string) error {
	key := constants.RedisPrefixPlaySession + userID

	if err := sessions.client.Set(ctx, key, historyID, sessions.ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

func (sessions *RedisSessions) Current(ctx context.Context, userID string) (string, error) {
	key := constants.RedisPrefixPlaySession + userID

	historyID, err := sessions.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return historyID, nil
}

// # Leaderboard Cache

// RedisLeaderboardCache implements [LeaderboardCache] with JSON values.
type RedisLeaderboardCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisLeaderboardCache creates a cache whose entries live for ttl.
// A non-positive ttl selects [constants.LeaderboardCacheTTL].
func NewRedisLeaderboardCache(client redis.UniversalClient, ttl time.Duration) *RedisLeaderboardCache {
	if ttl <= 0 {
		ttl = constants.LeaderboardCacheTTL
	}
	return &RedisLeaderboardCache{client: client, ttl: ttl}
}

func (cache *RedisLeaderboardCache) Get(ctx context.Context, key string) ([]RankedStory, bool, error) {
	payload, err := cache.client.Get(ctx, constants.RedisPrefixLeaderboard+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_leaderboard_get_failed: %w", err)
	}

	var rows []RankedStory
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("redis_leaderboard_decode_failed: %w", err)
	}
	return rows, true, nil
}

func (cache *RedisLeaderboardCache) Set(ctx context.Context, key string, rows []RankedStory) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("redis_leaderboard_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, constants.RedisPrefixLeaderboard+key, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_leaderboard_set_failed: %w", err)
	}
	return nil
}
