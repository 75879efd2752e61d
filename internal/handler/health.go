// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/aptms/internal/cache"
	"github.com/olegiv/aptms/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cache
	cacheInfo cache.Info
	version   string
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. c may be nil.
func NewHealthHandler(db *sql.DB, c cache.Cache, cacheInfo cache.Info, version string, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		db:        db,
		cache:     c,
		cacheInfo: cacheInfo,
		version:   version,
		logger:    logger,
		startTime: time.Now(),
	}
}

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status         string           `json:"status"`
	Timestamp      time.Time        `json:"timestamp"`
	Uptime         string           `json:"uptime"`
	Version        string           `json:"version"`
	Checks         map[string]Check `json:"checks"`
	ActiveSessions int64            `json:"active_sessions"`
	Cache          *CacheStatus     `json:"cache,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// CacheStatus reports the content cache backend and its counters.
type CacheStatus struct {
	Backend  string  `json:"backend"`
	Fallback bool    `json:"fallback"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	Items    int     `json:"items"`
	HitRate  float64 `json:"hit_rate"`
}

// Health handles GET /health. Any failing check makes the status degraded;
// only an unreachable database answers 503, since pages render without the
// cache.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	dbCheck := h.checkDatabase(ctx)
	status := HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"database": dbCheck},
	}

	if h.cache != nil {
		cacheCheck := h.checkCache(ctx)
		status.Checks["cache"] = cacheCheck
		status.Cache = h.cacheStatus()
		if cacheCheck.Status != statusHealthy {
			status.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if dbCheck.Status != statusHealthy {
		status.Status = statusDegraded
		code = http.StatusServiceUnavailable
	} else if n, err := store.CountActiveSessions(ctx, h.db); err == nil {
		status.ActiveSessions = n
	} else {
		h.logger.WarnContext(ctx, "counting active sessions failed", "error", err)
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		h.logger.ErrorContext(ctx, "health check: database ping failed", "error", err)
		return Check{Status: statusUnhealthy, Message: "Database unavailable", Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

// checkCache pings remote backends. The memory backend is always healthy.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	msg := h.cacheInfo.Backend
	if h.cacheInfo.IsFallback {
		msg = fmt.Sprintf("%s (redis unavailable at startup)", h.cacheInfo.Backend)
	}

	p, ok := h.cache.(cache.Pinger)
	if !ok {
		return Check{Status: statusHealthy, Message: msg}
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		h.logger.ErrorContext(ctx, "health check: cache ping failed", "backend", h.cacheInfo.Backend, "error", err)
		return Check{Status: statusUnhealthy, Message: "Cache unavailable", Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: msg, Latency: latency.String()}
}

func (h *HealthHandler) cacheStatus() *CacheStatus {
	cs := &CacheStatus{Backend: h.cacheInfo.Backend, Fallback: h.cacheInfo.IsFallback}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		cs.Hits = stats.Hits
		cs.Misses = stats.Misses
		cs.Items = stats.Items
		cs.HitRate = stats.HitRate
	}
	return cs
}
