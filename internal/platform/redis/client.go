// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile engagement data.

Two kinds of keys live here, both with a TTL:

  - Play sessions: the "current history entry" slot per user.
  - Leaderboards: cached most-played and most-favorited rankings.

Losing Redis never loses durable data; Postgres remains the source of truth.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// ClientOptions tunes the connection pool. Zero fields keep go-redis defaults.
type ClientOptions struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultClientOptions suits the small, latency-sensitive engagement workload.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		PoolSize:     10,
		MinIdleConns: 1,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}
}

func (options ClientOptions) apply(target *redis.Options) {
	if options.PoolSize > 0 {
		target.PoolSize = options.PoolSize
	}
	if options.MinIdleConns > 0 {
		target.MinIdleConns = options.MinIdleConns
	}
	if options.DialTimeout > 0 {
		target.DialTimeout = options.DialTimeout
	}
	if options.ReadTimeout > 0 {
		target.ReadTimeout = options.ReadTimeout
	}
	if options.WriteTimeout > 0 {
		target.WriteTimeout = options.WriteTimeout
	}
}

// NewClient parses redisURL (redis:// or rediss://), applies options and
// returns a client that has answered a PING.
func NewClient(ctx context.Context, redisURL string, options ClientOptions, logger *slog.Logger) (*redis.Client, error) {
	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.apply(parsed)

	client := redis.NewClient(parsed)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", parsed.Addr),
		slog.Int("db", parsed.DB),
		slog.Int("pool_size", parsed.PoolSize),
	)

	return client, nil
}

// Ping checks the client within a short deadline; used by /ready.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
