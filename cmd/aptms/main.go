// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aptms/internal/cache"
	"github.com/olegiv/aptms/internal/config"
	"github.com/olegiv/aptms/internal/logging"
	"github.com/olegiv/aptms/internal/metrics"
	"github.com/olegiv/aptms/internal/model"
	"github.com/olegiv/aptms/internal/nav"
	"github.com/olegiv/aptms/internal/render"
	"github.com/olegiv/aptms/internal/service"
	"github.com/olegiv/aptms/internal/session"
	"github.com/olegiv/aptms/internal/store"
	"github.com/olegiv/aptms/internal/version"
	"github.com/olegiv/aptms/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "aptms - Apartment Management System website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_SESSION_SECRET   Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_DB_PATH          SQLite database path (default: ./data/aptms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_ENV              Environment: development|staging|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_SITE_URL         Public base URL for the sitemap\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_SIGNIN_URL       Sign-in call to action target (default: /login)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_SIGNUP_URL       Sign-up call to action target (default: /signup)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APTMS_REDIS_URL        Redis URL for the shared cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// navConfig assembles the bar from the configuration and validates it.
func navConfig(cfg *config.Config) (nav.Config, error) {
	nc := nav.Config{
		Brand:        cfg.SiteName,
		BrandURL:     "/",
		Items:        model.DefaultMainMenu(),
		SignIn:       model.AuthAction{Label: "Log in", URL: cfg.SignInURL},
		SignUp:       model.AuthAction{Label: "Sign up", URL: cfg.SignUpURL, Primary: true},
		MobileSignIn: model.AuthAction{Label: "Sign in", URL: cfg.SignInURL, Primary: true},
	}
	if err := nc.Validate(); err != nil {
		return nav.Config{}, fmt.Errorf("validating navigation: %w", err)
	}
	return nc, nil
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)
	slog.Info("starting aptms", "version", versionInfo.Version, "commit", versionInfo.GitCommit, "env", cfg.Env)

	navCfg, err := navConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg.MaxSize = cfg.CacheMaxSize
	contentCache, cacheInfo := cache.New(cacheCfg, logger)
	defer func() { _ = contentCache.Close() }()
	slog.Info("cache initialized", "backend", cacheInfo.Backend, "fallback", cacheInfo.IsFallback)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		SiteName:    cfg.SiteName,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	if err := checkTemplates(renderer); err != nil {
		return err
	}

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	legalService := service.NewLegalService(contentCache, logger)
	if err := legalService.Invalidate(context.Background()); err != nil {
		slog.Warn("dropping cached legal documents failed", "error", err)
	}

	r := newRouter(app{
		cfg:       cfg,
		version:   versionInfo,
		db:        db,
		cache:     contentCache,
		cacheInfo: cacheInfo,
		sessions:  sessionManager,
		renderer:  renderer,
		legal:     legalService,
		metrics:   metrics.New(),
		nav:       navCfg,
		static:    staticFS,
		logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...", "grace_period", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
