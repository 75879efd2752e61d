// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"fmt"

	"github.com/olegiv/aptms/internal/model"
)

// Toggle glyph names, matched by the icon sprites in the navbar partial.
const (
	IconMenu  = "menu"
	IconClose = "close"
)

// Navigator is the routing collaborator that carries out navigation intents.
type Navigator interface {
	// NavigateTo moves to another route. Navigating to the current path is a no-op visually.
	NavigateTo(path string)
	// ScrollTo moves to an anchor on the current page.
	ScrollTo(anchor string)
}

// Config is the static part of the bar, assembled once at startup.
type Config struct {
	Brand    string
	BrandURL string
	Items    []model.NavItem

	// SignIn and SignUp are shown in the wide layout.
	SignIn model.AuthAction
	SignUp model.AuthAction
	// MobileSignIn replaces both in the narrow layout.
	MobileSignIn model.AuthAction
}

// Validate checks the configured items and auth actions.
func (c Config) Validate() error {
	if err := ValidateItems(c.Items); err != nil {
		return err
	}
	for _, a := range []model.AuthAction{c.SignIn, c.SignUp, c.MobileSignIn} {
		if a.Label == "" || a.URL == "" {
			return fmt.Errorf("%w: auth action %q needs a label and a URL", ErrInvalidItem, a.Label)
		}
	}
	return nil
}

// Bar is the navigation bar view-model. It owns the menu-open flag of one
// visitor and is not safe for concurrent use.
type Bar struct {
	cfg      Config
	menuOpen bool
}

// New returns a bar over cfg with the disclosure state restored to menuOpen.
func New(cfg Config, menuOpen bool) *Bar {
	return &Bar{cfg: cfg, menuOpen: menuOpen}
}

// MenuOpen reports whether the mobile panel is open.
func (b *Bar) MenuOpen() bool {
	return b.menuOpen
}

// ToggleMenu flips the mobile panel.
func (b *Bar) ToggleMenu() {
	b.menuOpen = !b.menuOpen
}

// SelectEntry hands the entry's target to n and closes the panel.
//
// The panel can only be opened from the narrow layout, so an open panel
// implies that layout and closing it unconditionally matches closing it on
// mobile only.
func (b *Bar) SelectEntry(e Entry, n Navigator) {
	if e.IsAnchor() {
		n.ScrollTo(e.Target)
	} else {
		n.NavigateTo(e.Target)
	}
	b.menuOpen = false
}

// Lookup finds the configured entry with the given target.
func (b *Bar) Lookup(target string) (Entry, bool) {
	for _, item := range b.cfg.Items {
		if item.Target == target {
			return Entry{Label: item.Label, Target: item.Target}, true
		}
	}
	return Entry{}, false
}

// EventKind identifies a user interaction with the bar.
type EventKind int

// Bar events.
const (
	EventToggle EventKind = iota + 1
	EventSelect
)

// String returns the event name used in logs and metrics.
func (k EventKind) String() string {
	switch k {
	case EventToggle:
		return "toggle"
	case EventSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Event is one user interaction. Target is set for EventSelect.
type Event struct {
	Kind   EventKind
	Target string
}

// Dispatch applies ev to the bar. It returns false, leaving the state
// untouched, when the event is unknown or selects a target that is not
// configured.
func (b *Bar) Dispatch(ev Event, n Navigator) bool {
	switch ev.Kind {
	case EventToggle:
		b.ToggleMenu()
		return true
	case EventSelect:
		e, ok := b.Lookup(ev.Target)
		if !ok {
			return false
		}
		b.SelectEntry(e, n)
		return true
	default:
		return false
	}
}

// View is everything the navbar partial needs to render.
type View struct {
	Brand       string
	BrandURL    string
	CurrentPath string
	Entries     []Entry
	MenuOpen    bool
	Icon        string
	ToggleLabel string

	Actions      []model.AuthAction
	MobileAction model.AuthAction
}

// View derives the render input for currentPath.
func (b *Bar) View(currentPath string) View {
	v := View{
		Brand:        b.cfg.Brand,
		BrandURL:     b.cfg.BrandURL,
		CurrentPath:  currentPath,
		Entries:      ComputeEntries(currentPath, b.cfg.Items),
		MenuOpen:     b.menuOpen,
		Icon:         IconMenu,
		ToggleLabel:  "Open main menu",
		Actions:      []model.AuthAction{b.cfg.SignIn, b.cfg.SignUp},
		MobileAction: b.cfg.MobileSignIn,
	}
	if v.BrandURL == "" {
		v.BrandURL = "/"
	}
	if b.menuOpen {
		v.Icon = IconClose
		v.ToggleLabel = "Close main menu"
	}
	return v
}

// Current returns the current entry of v, if any.
func (v View) Current() (Entry, bool) {
	for _, e := range v.Entries {
		if e.IsCurrent {
			return e, true
		}
	}
	return Entry{}, false
}
