// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public site.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/aptms/internal/metrics"
	"github.com/olegiv/aptms/internal/model"
	"github.com/olegiv/aptms/internal/nav"
	"github.com/olegiv/aptms/internal/render"
	"github.com/olegiv/aptms/internal/session"
)

// Site holds what every page needs: the validated bar configuration, the
// footer links and the collaborators used to render them.
type Site struct {
	Nav      nav.Config
	Footer   []model.NavItem
	Sessions *scs.SessionManager
	Renderer *render.Renderer
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func (s *Site) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// bar restores the visitor's bar from the session.
func (s *Site) bar(r *http.Request) *nav.Bar {
	return nav.New(s.Nav, session.MenuOpen(r.Context(), s.Sessions))
}

// pageData assembles the layout data for the request path. An empty title
// defaults to the label of the current bar entry; the brand page keeps the
// bare site name.
func (s *Site) pageData(r *http.Request, title, description string, data any) render.TemplateData {
	path := r.URL.Path
	view := s.bar(r).View(path)
	if title == "" && path != view.BrandURL {
		if e, ok := view.Current(); ok {
			title = e.Label
		}
	}
	return render.TemplateData{
		Title:       title,
		Description: description,
		Nav:         view,
		Footer:      nav.ComputeEntries(path, s.Footer),
		Data:        data,
	}
}

// render writes a page and records the view.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page string, data render.TemplateData) {
	s.Renderer.RenderStatus(w, r, status, "pages/"+page, data)
	s.Metrics.PageViews.Increment(page)
}
