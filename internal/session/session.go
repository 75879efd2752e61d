// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures visitor sessions and the navigation state
// persisted in them.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// keyMenuOpen stores the mobile navigation panel state.
const keyMenuOpen = "nav.menu_open"

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		// __Host- prefix requires Secure, Path=/ and no Domain
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// MenuOpen reports whether the visitor left the mobile panel open.
func MenuOpen(ctx context.Context, sm *scs.SessionManager) bool {
	return sm.GetBool(ctx, keyMenuOpen)
}

// SetMenuOpen records the mobile panel state. A closed panel is the
// default and is stored by removing the key.
func SetMenuOpen(ctx context.Context, sm *scs.SessionManager, open bool) {
	if open {
		sm.Put(ctx, keyMenuOpen, true)
		return
	}
	sm.Remove(ctx, keyMenuOpen)
}
