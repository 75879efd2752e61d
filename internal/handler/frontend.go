// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/aptms/internal/seo"
	"github.com/olegiv/aptms/internal/service"
)

// FrontendHandler serves the public pages.
type FrontendHandler struct {
	site    *Site
	legal   *service.LegalService
	siteURL string

	// DisallowCrawlers makes robots.txt block everything.
	DisallowCrawlers bool
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(site *Site, legal *service.LegalService, siteURL string) *FrontendHandler {
	return &FrontendHandler{site: site, legal: legal, siteURL: siteURL}
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.site.pageData(r, "", "Leases, maintenance and rent collection for apartment buildings.", nil)
	h.site.render(w, r, http.StatusOK, "home", data)
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.site.render(w, r, http.StatusOK, "about", h.site.pageData(r, "", "", nil))
}

// Legal returns the handler for one legal document.
func (h *FrontendHandler) Legal(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.legal.Render(r.Context(), slug)
		if errors.Is(err, service.ErrDocumentNotFound) {
			h.NotFound(w, r)
			return
		}
		if err != nil {
			logAndInternalError(w, r, h.site.logger(), "failed to render legal document", "slug", slug, "error", err)
			return
		}
		h.site.render(w, r, http.StatusOK, "legal", h.site.pageData(r, doc.Title, "", doc))
	}
}

// NotFound renders the 404 page. The navbar still renders, with no entry current.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.site.render(w, r, http.StatusNotFound, "404", h.site.pageData(r, "Page not found", "", nil))
}

// Robots handles GET /robots.txt.
func (h *FrontendHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.DisallowCrawlers,
	})))
}

// Sitemap handles GET /sitemap.xml. It lists the path targets of the bar
// and footer followed by the legal documents.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.siteURL)
	for _, item := range h.site.Nav.Items {
		if item.IsPath() {
			b.AddPage(seo.SitemapPage{Path: item.Target, ChangeFreq: seo.ChangeFreqWeekly})
		}
	}
	for _, doc := range h.legal.Documents() {
		b.AddPage(seo.SitemapPage{Path: doc.Path, UpdatedAt: doc.Updated, ChangeFreq: seo.ChangeFreqYearly, Priority: "0.3"})
	}
	for _, item := range h.site.Footer {
		if item.IsPath() {
			b.AddPage(seo.SitemapPage{Path: item.Target, ChangeFreq: seo.ChangeFreqMonthly})
		}
	}

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, r, h.site.logger(), "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
