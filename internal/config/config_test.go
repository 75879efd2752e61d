// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "APTMS_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/aptms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/aptms.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.SiteName != "Apartment Management System" {
		t.Errorf("SiteName = %q", cfg.SiteName)
	}
	if cfg.SignInURL != "/login" || cfg.SignUpURL != "/signup" {
		t.Errorf("auth URLs = %q, %q", cfg.SignInURL, cfg.SignUpURL)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without APTMS_REDIS_URL")
	}
	if cfg.CacheTTL != 3600 {
		t.Errorf("CacheTTL = %d, want 3600", cfg.CacheTTL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "APTMS_SESSION_SECRET", testSecret)
	setEnv(t, "APTMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "APTMS_SERVER_PORT", "3000")
	setEnv(t, "APTMS_ENV", "production")
	setEnv(t, "APTMS_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "APTMS_SIGNIN_URL", "https://app.example.com/login")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if cfg.SignInURL != "https://app.example.com/login" {
		t.Errorf("SignInURL = %q", cfg.SignInURL)
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when APTMS_SESSION_SECRET is not set")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"short secret", "APTMS_SESSION_SECRET", "short"},
		{"weak default secret", "APTMS_SESSION_SECRET", "change-me-to-32-byte-secret-key!"},
		{"port zero", "APTMS_SERVER_PORT", "0"},
		{"port too large", "APTMS_SERVER_PORT", "70000"},
		{"non numeric port", "APTMS_SERVER_PORT", "http"},
		{"zero rate", "APTMS_NAV_RATE_LIMIT", "0"},
		{"negative burst", "APTMS_NAV_RATE_BURST", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "APTMS_SESSION_SECRET", testSecret)
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaAAAAAAAAAA111111111111", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
