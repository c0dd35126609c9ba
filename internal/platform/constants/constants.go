// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog: Default page sizes and related-story counts.
  - Caching: Redis key prefixes and TTLs.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kahani-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Audio proxying streams large bodies, so this is wider than a plain JSON API needs.
	DefaultWriteTimeout = 5 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for JSON request lifecycles.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalog

const (
	// DefaultRelatedLimit is the number of related stories shown beside a story.
	DefaultRelatedLimit = 3

	// MaxRelatedLimit caps the related-stories query parameter.
	MaxRelatedLimit = 50

	// MaxQueryLength caps free-text search input, in characters.
	MaxQueryLength = 200

	// DefaultLeaderboardLimit is the number of ranked stories returned by default.
	DefaultLeaderboardLimit = 20

	// DefaultSEODurationMinutes is used when a title carries no "<N> Minute" marker.
	DefaultSEODurationMinutes = 10
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRange         = "Range"
	HeaderContentRange  = "Content-Range"
	HeaderAcceptRanges  = "Accept-Ranges"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixPlaySession = "engagement:session:"
	RedisPrefixLeaderboard = "engagement:leaderboard:"
)

// # Engagement

const (
	// PlaySessionTTL bounds how long the "current history entry" slot survives
	// without a new play.
	PlaySessionTTL = 12 * time.Hour

	// LeaderboardCacheTTL is how long a cached ranking is served before recomputing.
	LeaderboardCacheTTL = 1 * time.Minute
)
