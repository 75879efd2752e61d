// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/aptms/internal/cache"
	"github.com/olegiv/aptms/internal/config"
	"github.com/olegiv/aptms/internal/handler"
	"github.com/olegiv/aptms/internal/metrics"
	"github.com/olegiv/aptms/internal/middleware"
	"github.com/olegiv/aptms/internal/model"
	"github.com/olegiv/aptms/internal/nav"
	"github.com/olegiv/aptms/internal/render"
	"github.com/olegiv/aptms/internal/service"
	"github.com/olegiv/aptms/internal/version"
)

// Route paths.
const (
	routeHome      = "/"
	routeAbout     = "/about"
	routeTerms     = "/terms"
	routePrivacy   = "/privacy"
	routeNavToggle = "/nav/toggle"
	routeNavSelect = "/nav/select"
	routeHealth    = "/health"
	routeLiveness  = "/health/live"
	routeMetrics   = "/metrics"
	routeRobots    = "/robots.txt"
	routeSitemap   = "/sitemap.xml"
	routeStatic    = "/static/dist/"
)

// sitePages are the page templates the handlers render.
var sitePages = []string{"home", "about", "legal", "404"}

// checkTemplates fails when a page the handlers render is missing.
func checkTemplates(r *render.Renderer) error {
	for _, p := range sitePages {
		if !r.Has("pages/" + p) {
			return fmt.Errorf("template pages/%s not found", p)
		}
	}
	return nil
}

// staticMaxAge is one year; asset names change on rebuild.
const staticMaxAge = 31536000

// app holds the dependencies wired into the router.
type app struct {
	cfg       *config.Config
	version   version.Info
	db        *sql.DB
	cache     cache.Cache
	cacheInfo cache.Info
	sessions  *scs.SessionManager
	renderer  *render.Renderer
	legal     *service.LegalService
	metrics   *metrics.Metrics
	nav       nav.Config
	static    fs.FS
	logger    *slog.Logger
}

func newRouter(a app) chi.Router {
	site := &handler.Site{
		Nav:      a.nav,
		Footer:   model.DefaultFooterMenu(),
		Sessions: a.sessions,
		Renderer: a.renderer,
		Metrics:  a.metrics,
		Logger:   a.logger,
	}
	frontendHandler := handler.NewFrontendHandler(site, a.legal, a.cfg.SiteURL)
	frontendHandler.DisallowCrawlers = a.cfg.Env == "staging"
	navHandler := handler.NewNavHandler(site)
	healthHandler := handler.NewHealthHandler(a.db, a.cache, a.cacheInfo, a.version.Version, a.logger)

	securityConfig := middleware.DefaultSecurityHeadersConfig(a.cfg.IsDevelopment())
	securityConfig.ExcludePaths = []string{routeMetrics}

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(a.cfg.SessionSecret), a.cfg.IsDevelopment()))
	navLimiter := middleware.NewRateLimiter(a.cfg.NavRateLimit, a.cfg.NavRateBurst)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Operational routes carry no session.
	r.Get(routeHealth, healthHandler.Health)
	r.Get(routeLiveness, healthHandler.Liveness)
	r.Handle(routeMetrics, a.metrics.Handler())
	r.Get(routeRobots, frontendHandler.Robots)
	r.Get(routeSitemap, frontendHandler.Sitemap)

	staticHandler := http.StripPrefix(routeStatic, http.FileServer(http.FS(a.static)))
	r.Handle(routeStatic+"*", middleware.StaticCache(staticMaxAge)(staticHandler))

	// Pages render the visitor's menu state.
	r.Group(func(r chi.Router) {
		r.Use(a.sessions.LoadAndSave)
		r.Use(middleware.NoStore)

		r.Get(routeHome, frontendHandler.Home)
		r.Get(routeAbout, frontendHandler.About)
		r.Get(routeTerms, frontendHandler.Legal("terms"))
		r.Get(routePrivacy, frontendHandler.Legal("privacy"))

		r.Group(func(r chi.Router) {
			r.Use(navLimiter.Middleware())
			r.Use(csrfMiddleware)

			r.Post(routeNavToggle, navHandler.Toggle)
			r.Post(routeNavSelect, navHandler.Select)
		})
	})

	r.NotFound(a.sessions.LoadAndSave(middleware.NoStore(http.HandlerFunc(frontendHandler.NotFound))).ServeHTTP)

	return r
}
