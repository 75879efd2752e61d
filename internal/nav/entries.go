// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav implements the site's responsive navigation bar: the entry
// list derived from the current path and the collapsible mobile panel state.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/aptms/internal/model"
)

// Entry is one navigable item as rendered for a specific path.
type Entry struct {
	Label     string
	Target    string
	IsCurrent bool
}

// IsAnchor reports whether the entry scrolls within the page.
func (e Entry) IsAnchor() bool {
	return model.IsAnchorTarget(e.Target)
}

// ComputeEntries derives the ordered entry list for currentPath.
// An entry is current only when its target is a path equal to currentPath;
// prefixes do not match and anchors are never current.
func ComputeEntries(currentPath string, items []model.NavItem) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Label:     item.Label,
			Target:    item.Target,
			IsCurrent: item.IsPath() && item.Target == currentPath,
		})
	}
	return entries
}

// ErrInvalidItem is wrapped by every ValidateItems failure.
var ErrInvalidItem = errors.New("invalid navigation item")

// ValidateItems checks configured items before the bar is assembled.
func ValidateItems(items []model.NavItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items configured", ErrInvalidItem)
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("%w: item %d has no label", ErrInvalidItem, i)
		}
		if item.Target == "" {
			return fmt.Errorf("%w: item %q has no target", ErrInvalidItem, item.Label)
		}
		if !item.IsAnchor() && !item.IsPath() {
			return fmt.Errorf("%w: item %q target %q is neither a path nor an anchor",
				ErrInvalidItem, item.Label, item.Target)
		}
		if seen[item.Target] {
			return fmt.Errorf("%w: duplicate target %q", ErrInvalidItem, item.Target)
		}
		seen[item.Target] = true
	}
	return nil
}
