// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the content services behind the public pages.
package service

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/olegiv/aptms/internal/cache"
)

//go:embed legal/*.md
var legalFS embed.FS

// ErrDocumentNotFound is returned for an unknown legal document slug.
var ErrDocumentNotFound = errors.New("legal document not found")

// legalCacheTTL bounds how long rendered documents stay cached. Sources are
// embedded, so entries only change on deploy.
const legalCacheTTL = 24 * time.Hour

// Document describes one legal page.
type Document struct {
	Slug    string
	Title   string
	Path    string
	Updated time.Time
}

// documents lists the legal pages in footer order.
var documents = []Document{
	{Slug: "terms", Title: "Terms of Service", Path: "/terms", Updated: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
	{Slug: "privacy", Title: "Privacy Policy", Path: "/privacy", Updated: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
}

// RenderedDocument is a legal page ready for the layout.
type RenderedDocument struct {
	Document
	HTML template.HTML
}

// LegalService renders the embedded legal documents.
type LegalService struct {
	cache  cache.Cache
	md     goldmark.Markdown
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewLegalService creates a LegalService. A nil cache renders on every call.
func NewLegalService(c cache.Cache, logger *slog.Logger) *LegalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LegalService{
		cache: c,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
		logger: logger,
	}
}

// Documents returns the known documents in a stable order.
func (s *LegalService) Documents() []Document {
	out := make([]Document, len(documents))
	copy(out, documents)
	return out
}

// Render returns the sanitized HTML for slug.
func (s *LegalService) Render(ctx context.Context, slug string) (RenderedDocument, error) {
	doc, ok := lookupDocument(slug)
	if !ok {
		return RenderedDocument{}, fmt.Errorf("%w: %q", ErrDocumentNotFound, slug)
	}

	key := cacheKey(slug)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return RenderedDocument{Document: doc, HTML: template.HTML(cached)}, nil //nolint:gosec // sanitized before caching
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "legal cache read failed", "key", key, "error", err)
		}
	}

	src, err := legalFS.ReadFile("legal/" + slug + ".md")
	if err != nil {
		return RenderedDocument{}, fmt.Errorf("reading %s: %w", slug, err)
	}

	html, err := s.convert(src)
	if err != nil {
		return RenderedDocument{}, fmt.Errorf("converting %s: %w", slug, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, html, legalCacheTTL); err != nil {
			s.logger.WarnContext(ctx, "legal cache write failed", "key", key, "error", err)
		}
	}

	return RenderedDocument{Document: doc, HTML: template.HTML(html)}, nil //nolint:gosec // sanitized by bluemonday
}

// Invalidate drops the cached HTML of every document. It runs at startup so a
// shared cache never serves documents from an earlier build.
func (s *LegalService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	var errs []error
	for _, d := range documents {
		if err := s.cache.Delete(ctx, cacheKey(d.Slug)); err != nil {
			errs = append(errs, fmt.Errorf("deleting %s: %w", d.Slug, err))
		}
	}
	return errors.Join(errs...)
}

func cacheKey(slug string) string {
	return "legal:" + slug
}

// convert renders markdown and strips anything outside the UGC policy.
func (s *LegalService) convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return s.policy.SanitizeBytes(buf.Bytes()), nil
}

func lookupDocument(slug string) (Document, bool) {
	for _, d := range documents {
		if d.Slug == slug {
			return d, true
		}
	}
	return Document{}, false
}
