// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and sitemap.xml for the public pages.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPage is one local path to list.
type SitemapPage struct {
	Path       string
	UpdatedAt  time.Time
	ChangeFreq ChangeFreq
	Priority   string
}

// SitemapBuilder collects pages and renders the sitemap. Duplicate paths
// are listed once.
type SitemapBuilder struct {
	siteURL string
	seen    map[string]bool
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		seen:    make(map[string]bool),
	}
}

// AddPage adds a page. The root path gets top priority and paths that are
// not local are ignored.
func (b *SitemapBuilder) AddPage(page SitemapPage) {
	if !strings.HasPrefix(page.Path, "/") || b.seen[page.Path] {
		return
	}
	b.seen[page.Path] = true

	u := SitemapURL{
		Loc:        b.siteURL + page.Path,
		ChangeFreq: page.ChangeFreq,
		Priority:   page.Priority,
	}
	if page.Path == "/" && u.Priority == "" {
		u.Priority = "1.0"
	}
	if !page.UpdatedAt.IsZero() {
		u.LastMod = page.UpdatedAt.Format(time.DateOnly)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of listed URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}
