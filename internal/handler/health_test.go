// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/aptms/internal/cache"
	"github.com/olegiv/aptms/internal/testutil"
)

// unreachableCache is a memory cache whose remote ping always fails.
type unreachableCache struct {
	*cache.MemoryCache
}

func (unreachableCache) Ping(context.Context) error {
	return errors.New("dial tcp 10.0.0.7:6379: connect: connection refused")
}

func newHealthCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func getHealth(t *testing.T, h *HealthHandler) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return rec, status
}

func TestHealthHandler_Healthy(t *testing.T) {
	h := NewHealthHandler(testutil.TestDB(t), nil, cache.Info{}, "1.2.3", testutil.TestLogger())

	rec, status := getHealth(t, h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Equal(t, "healthy", status.Checks["database"].Status)
	assert.NotContains(t, status.Checks, "cache")
	assert.Nil(t, status.Cache)
	assert.Zero(t, status.ActiveSessions)
}

func TestHealthHandler_CountsSessions(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/nav/toggle", url.Values{"from": {"/"}})

	_, status := getHealth(t, NewHealthHandler(env.db, nil, cache.Info{}, "dev", nil))
	assert.Equal(t, int64(1), status.ActiveSessions)
}

func TestHealthHandler_CacheStats(t *testing.T) {
	c := newHealthCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "legal:terms", []byte("<p>t</p>"), 0))
	_, _ = c.Get(ctx, "legal:terms")
	_, _ = c.Get(ctx, "legal:privacy")

	h := NewHealthHandler(testutil.TestDB(t), c, cache.Info{Backend: cache.BackendMemory}, "dev", testutil.TestLogger())
	rec, status := getHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, Check{Status: "healthy", Message: "memory"}, status.Checks["cache"])
	require.NotNil(t, status.Cache)
	assert.Equal(t, CacheStatus{Backend: "memory", Hits: 1, Misses: 1, Items: 1, HitRate: 50}, *status.Cache)
}

func TestHealthHandler_CacheFallbackReported(t *testing.T) {
	info := cache.Info{Backend: cache.BackendMemory, IsFallback: true}
	h := NewHealthHandler(testutil.TestDB(t), newHealthCache(t), info, "dev", testutil.TestLogger())

	rec, status := getHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", status.Checks["cache"].Status)
	assert.Contains(t, status.Checks["cache"].Message, "redis unavailable")
	require.NotNil(t, status.Cache)
	assert.True(t, status.Cache.Fallback)
}

func TestHealthHandler_CacheUnreachable(t *testing.T) {
	c := unreachableCache{newHealthCache(t)}
	h := NewHealthHandler(testutil.TestDB(t), c, cache.Info{Backend: cache.BackendRedis}, "dev", testutil.TestLogger())

	rec, status := getHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code, "pages still render without the cache")
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unhealthy", status.Checks["cache"].Status)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHealthHandler_Degraded(t *testing.T) {
	db := testutil.TestDB(t)
	h := NewHealthHandler(db, nil, cache.Info{}, "dev", testutil.TestLogger())
	require.NoError(t, db.Close())

	rec, status := getHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, Check{Status: "unhealthy", Message: "Database unavailable", Latency: status.Checks["database"].Latency}, status.Checks["database"])
	assert.NotContains(t, rec.Body.String(), "sql:")
	assert.NotContains(t, rec.Body.String(), "closed")
}

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, nil, cache.Info{}, "dev", nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}
