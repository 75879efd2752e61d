// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides the slog handler used by the site. It decorates
// every record logged with a request context with that request's ID and path.
package logging

import (
	"context"
	"io"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/aptms/internal/middleware"
)

// Attribute keys added to request-scoped records.
const (
	KeyRequestID = "request_id"
	KeyPath      = "path"
)

// RequestContextHandler is a slog.Handler that wraps another handler and adds
// request_id and path attributes taken from the record's context.
type RequestContextHandler struct {
	inner slog.Handler
}

// NewRequestContextHandler wraps inner.
func NewRequestContextHandler(inner slog.Handler) *RequestContextHandler {
	return &RequestContextHandler{inner: inner}
}

// New builds the application logger: a text handler on w at level, wrapped
// with request context attributes.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewRequestContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

// Enabled implements slog.Handler.
func (h *RequestContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" && !hasAttr(r, KeyRequestID) {
			r.AddAttrs(slog.String(KeyRequestID, id))
		}
		if path := middleware.GetRequestPath(ctx); path != "" && !hasAttr(r, KeyPath) {
			r.AddAttrs(slog.String(KeyPath, path))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *RequestContextHandler) WithGroup(name string) slog.Handler {
	return &RequestContextHandler{inner: h.inner.WithGroup(name)}
}

// hasAttr reports whether the record already carries key.
func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
