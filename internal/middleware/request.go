// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyRequestPath holds the request path as received, before routing.
const ContextKeyRequestPath ContextKey = "request_path"

// RequestPath stores the request URL path in the request context.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath returns the path stored by RequestPath, or "".
func GetRequestPath(ctx context.Context) string {
	if p, ok := ctx.Value(ContextKeyRequestPath).(string); ok {
		return p
	}
	return ""
}

// ClientIP returns the client address for rate limiting. Proxy headers are
// honoured first, then the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
