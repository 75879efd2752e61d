// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"APTMS_DB_PATH" envDefault:"./data/aptms.db"`
	SessionSecret string `env:"APTMS_SESSION_SECRET,required"`
	ServerHost    string `env:"APTMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"APTMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"APTMS_ENV" envDefault:"development"`
	LogLevel      string `env:"APTMS_LOG_LEVEL" envDefault:"info"`

	// Site identity
	SiteName string `env:"APTMS_SITE_NAME" envDefault:"Apartment Management System"`
	SiteURL  string `env:"APTMS_SITE_URL" envDefault:"http://localhost:8080"`

	// Auth call-to-action targets. Sign-in and sign-up are served by the
	// account service, so these may be absolute URLs.
	SignInURL string `env:"APTMS_SIGNIN_URL" envDefault:"/login"`
	SignUpURL string `env:"APTMS_SIGNUP_URL" envDefault:"/signup"`

	// Cache configuration
	RedisURL     string `env:"APTMS_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"APTMS_CACHE_PREFIX" envDefault:"aptms:"`   // Redis key prefix
	CacheTTL     int    `env:"APTMS_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"APTMS_CACHE_MAX_SIZE" envDefault:"1000"`   // Max memory cache entries

	// Navigation endpoint rate limiting (per client IP)
	NavRateLimit float64 `env:"APTMS_NAV_RATE_LIMIT" envDefault:"5"`
	NavRateBurst int     `env:"APTMS_NAV_RATE_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// It doubles as the CSRF authentication key, which must be 32 bytes.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("APTMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("APTMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("APTMS_SERVER_PORT out of range: %d", cfg.ServerPort)
	}

	if cfg.NavRateLimit <= 0 || cfg.NavRateBurst <= 0 {
		return nil, fmt.Errorf("APTMS_NAV_RATE_LIMIT and APTMS_NAV_RATE_BURST must be positive")
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("APTMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
