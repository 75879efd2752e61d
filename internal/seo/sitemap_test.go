// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://example.com/")
	b.AddPage(SitemapPage{Path: "/", ChangeFreq: ChangeFreqWeekly})
	b.AddPage(SitemapPage{Path: "/about", ChangeFreq: ChangeFreqMonthly, Priority: "0.8"})
	b.AddPage(SitemapPage{Path: "/terms", UpdatedAt: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), ChangeFreq: ChangeFreqYearly})

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("Build() output should start with the XML header")
	}

	var got Sitemap
	if err := xml.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if len(got.URLs) != 3 {
		t.Fatalf("got %d URLs, want 3", len(got.URLs))
	}
	if got.URLs[0].Loc != "https://example.com/" || got.URLs[0].Priority != "1.0" {
		t.Errorf("home entry = %+v", got.URLs[0])
	}
	if got.URLs[1].Priority != "0.8" {
		t.Errorf("about priority = %q, want 0.8", got.URLs[1].Priority)
	}
	if got.URLs[2].LastMod != "2026-03-02" {
		t.Errorf("terms lastmod = %q, want 2026-03-02", got.URLs[2].LastMod)
	}
}

func TestSitemapBuilder_SkipsAnchorsAndDuplicates(t *testing.T) {
	b := NewSitemapBuilder("https://example.com")
	b.AddPage(SitemapPage{Path: "/about"})
	b.AddPage(SitemapPage{Path: "/about"})
	b.AddPage(SitemapPage{Path: "#features"})
	b.AddPage(SitemapPage{Path: "https://elsewhere.example.com/"})

	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}
