// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/aptms/internal/nav"
	"github.com/olegiv/aptms/internal/session"
)

// NavHandler turns navbar form posts into bar events.
type NavHandler struct {
	site *Site
}

// NewNavHandler creates a new NavHandler.
func NewNavHandler(site *Site) *NavHandler {
	return &NavHandler{site: site}
}

// redirectNavigator carries out navigation intents as a redirect location.
// Anchors resolve against the page the event came from.
type redirectNavigator struct {
	from     string
	location string
}

func (n *redirectNavigator) NavigateTo(path string) {
	n.location = path
}

func (n *redirectNavigator) ScrollTo(anchor string) {
	n.location = n.from + anchor
}

// Toggle handles POST /nav/toggle.
func (h *NavHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	from := localPath(r.PostFormValue("from"))

	bar := h.site.bar(r)
	bar.Dispatch(nav.Event{Kind: nav.EventToggle}, &redirectNavigator{from: from})
	session.SetMenuOpen(r.Context(), h.site.Sessions, bar.MenuOpen())

	state := "closed"
	if bar.MenuOpen() {
		state = "open"
	}
	h.site.Metrics.NavToggles.Increment(state)
	h.site.logger().DebugContext(r.Context(), "nav menu toggled", "state", state, "from", from)

	http.Redirect(w, r, from, http.StatusSeeOther)
}

// Select handles POST /nav/select. A target that is not configured leaves
// the state alone and sends the visitor back where they came from.
func (h *NavHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	from := localPath(r.PostFormValue("from"))
	target := r.PostFormValue("target")

	bar := h.site.bar(r)
	n := &redirectNavigator{from: from}
	if !bar.Dispatch(nav.Event{Kind: nav.EventSelect, Target: target}, n) {
		h.site.Metrics.NavRejected.Increment(nav.EventSelect.String())
		h.site.logger().WarnContext(r.Context(), "nav select for unknown target", "target", target)
		http.Redirect(w, r, from, http.StatusSeeOther)
		return
	}
	session.SetMenuOpen(r.Context(), h.site.Sessions, bar.MenuOpen())

	kind := "path"
	if entry, _ := bar.Lookup(target); entry.IsAnchor() {
		kind = "anchor"
	}
	h.site.Metrics.NavSelections.Increment(kind)
	h.site.logger().DebugContext(r.Context(), "nav entry selected", "target", target, "location", n.location)

	http.Redirect(w, r, n.location, http.StatusSeeOther)
}
