// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the site's configuration-level data types.
package model

import "strings"

// AnchorPrefix marks an in-page anchor target such as "#features".
const AnchorPrefix = "#"

// NavItem is one configured navigation link.
type NavItem struct {
	Label  string
	Target string // "/path" or "#anchor"
}

// IsAnchor reports whether the item scrolls within the current page.
func (i NavItem) IsAnchor() bool {
	return IsAnchorTarget(i.Target)
}

// IsPath reports whether the item navigates to another route.
func (i NavItem) IsPath() bool {
	return IsPathTarget(i.Target)
}

// IsAnchorTarget reports whether target is an in-page anchor ("#name").
func IsAnchorTarget(target string) bool {
	return strings.HasPrefix(target, AnchorPrefix) && len(target) > len(AnchorPrefix)
}

// IsPathTarget reports whether target is a local absolute path.
// Protocol-relative targets ("//host") are not paths.
func IsPathTarget(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}

// IsLocalPath reports whether p can be used as a redirect Location on this
// site. Browsers read a backslash as a slash, so "/\host" is rejected along
// with "//host" and control characters.
func IsLocalPath(p string) bool {
	return IsPathTarget(p) && !strings.ContainsAny(p, "\\\r\n\t")
}

// AuthAction is a sign-in or sign-up call to action.
type AuthAction struct {
	Label   string
	URL     string
	Primary bool
}

// DefaultMainMenu is the main bar of the marketing site.
func DefaultMainMenu() []NavItem {
	return []NavItem{
		{Label: "Home", Target: "/"},
		{Label: "Features", Target: "#features"},
		{Label: "Pricing", Target: "#pricing"},
		{Label: "About", Target: "/about"},
	}
}

// DefaultFooterMenu links the legal pages.
func DefaultFooterMenu() []NavItem {
	return []NavItem{
		{Label: "Terms of Service", Target: "/terms"},
		{Label: "Privacy Policy", Target: "/privacy"},
	}
}
