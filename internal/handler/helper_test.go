// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/aptms/internal/cache"
	"github.com/olegiv/aptms/internal/metrics"
	"github.com/olegiv/aptms/internal/model"
	"github.com/olegiv/aptms/internal/nav"
	"github.com/olegiv/aptms/internal/render"
	"github.com/olegiv/aptms/internal/service"
	"github.com/olegiv/aptms/internal/session"
	"github.com/olegiv/aptms/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	site     *Site
	frontend *FrontendHandler
	server   *httptest.Server
	client   *http.Client
}

func testNavConfig() nav.Config {
	return nav.Config{
		Brand:        "Apartment Management System",
		BrandURL:     "/",
		Items:        model.DefaultMainMenu(),
		SignIn:       model.AuthAction{Label: "Log in", URL: "/login"},
		SignUp:       model.AuthAction{Label: "Sign up", URL: "/signup", Primary: true},
		MobileSignIn: model.AuthAction{Label: "Sign in", URL: "/login", Primary: true},
	}
}

// newTestEnv starts a server with the page and nav routes and a client that
// keeps cookies and does not follow redirects.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	renderer, err := render.New(render.Config{TemplatesFS: testutil.TemplatesFS(t), SiteName: "Apartment Management System"})
	require.NoError(t, err)

	memCache := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = memCache.Close() })

	sm := session.New(db, true)
	site := &Site{
		Nav:      testNavConfig(),
		Footer:   model.DefaultFooterMenu(),
		Sessions: sm,
		Renderer: renderer,
		Metrics:  metrics.New(),
	}
	frontend := NewFrontendHandler(site, service.NewLegalService(memCache, nil), "https://apartments.example.com")
	navHandler := NewNavHandler(site)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get("/", frontend.Home)
	r.Get("/about", frontend.About)
	r.Get("/terms", frontend.Legal("terms"))
	r.Get("/privacy", frontend.Legal("privacy"))
	r.Get("/robots.txt", frontend.Robots)
	r.Get("/sitemap.xml", frontend.Sitemap)
	r.Post("/nav/toggle", navHandler.Toggle)
	r.Post("/nav/select", navHandler.Select)
	r.NotFound(frontend.NotFound)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{db: db, site: site, frontend: frontend, server: srv, client: client}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.client.Post(e.server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp
}
