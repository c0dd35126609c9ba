// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
honoured when present (development convenience via 'joho/godotenv').

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (catalog, DB, Redis) via constructors.
  - Optional Backends: Postgres, Redis and RabbitMQ are all optional; the service
    degrades to in-memory implementations when their URLs are empty.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Audio Delivery Modes

const (
	// AudioModeRedirect answers audio requests with a 302 to the hosted object.
	AudioModeRedirect = "redirect"

	// AudioModeProxy streams the hosted object through this server.
	AudioModeProxy = "proxy"
)

// # Configuration Schema

// Config holds all runtime configuration for the Kahani API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Public site identity, used by the feed, sitemap and SEO metadata
	SiteURL         string `env:"SITE_URL"         envDefault:"https://www.quick.dailymeditationguide.com"`
	SiteTitle       string `env:"SITE_TITLE"       envDefault:"Hindi Story Audiobook"`
	SiteDescription string `env:"SITE_DESCRIPTION" envDefault:"Immersive audio landscapes, guided stories, and sleep stories designed to help you focus, breathe, and restore balance to your day."`

	// CatalogPath points at the static story catalog (.json, .yaml or .yml).
	CatalogPath string `env:"CATALOG_PATH" envDefault:"./data/stories.json"`

	// Audio delivery
	AudioMode         string        `env:"AUDIO_MODE"          envDefault:"redirect"`
	AudioProxyTimeout time.Duration `env:"AUDIO_PROXY_TIMEOUT" envDefault:"2m"`

	// Relational Database (PostgreSQL) for engagement records
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL       string        `env:"REDIS_URL"`
	LeaderboardTTL time.Duration `env:"LEADERBOARD_TTL" envDefault:"1h"`

	// External identity provider token verification (HS256 shared secret)
	IdentityJWTSecret   string `env:"IDENTITY_JWT_SECRET"`
	IdentityJWTIssuer   string `env:"IDENTITY_JWT_ISSUER"`
	IdentityJWTAudience string `env:"IDENTITY_JWT_AUDIENCE" envDefault:"authenticated"`

	// Play event fan-out (RabbitMQ)
	AMQPURL        string `env:"AMQP_URL"`
	AMQPExchange   string `env:"AMQP_EXCHANGE"    envDefault:"kahani.events"`
	AMQPRoutingKey string `env:"AMQP_ROUTING_KEY" envDefault:"story.played"`
	AMQPQueue      string `env:"AMQP_QUEUE"       envDefault:"kahani.story_played"`

	// Cross-Origin Resource Sharing ("*" or a comma-separated allow list)
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects combinations that cannot be served.
func (c *Config) Validate() error {
	switch c.AudioMode {
	case AudioModeRedirect, AudioModeProxy:
	default:
		return fmt.Errorf("config: AUDIO_MODE must be %q or %q, got %q", AudioModeRedirect, AudioModeProxy, c.AudioMode)
	}

	if strings.TrimSpace(c.SiteURL) == "" {
		return errors.New("config: SITE_URL must not be empty")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the parsed CORS allow list. A single "*" means any origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// BaseURL returns SiteURL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.SiteURL, "/")
}
