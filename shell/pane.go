// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/pane.go
// Summary: Pane handle owned by the manager while open.

package shell

import (
	"sync"

	"github.com/google/uuid"
)

// PaneID uniquely identifies one live pane instance.
type PaneID string

// SizeHint is a pane's size-preference category. The layout engine treats it
// as advisory; tiling modes assign regions from list order.
type SizeHint int

const (
	SizeFlex SizeHint = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeFixed
)

func (s SizeHint) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeFixed:
		return "fixed"
	default:
		return "flex"
	}
}

// Pane hosts one App inside a tiled region. The manager owns the handle while
// the pane is open; Close transfers ownership to the disposal path.
type Pane struct {
	id       PaneID
	typeName string
	hint     SizeHint
	app      App

	region  Rect
	focused bool

	disposed  bool
	readyOnce sync.Once
	ready     chan struct{}
}

// NewPane wraps an app in a fresh pane handle. The pane-type name is the
// factory registration name used to rebuild the pane on workspace restore.
func NewPane(typeName string, hint SizeHint, app App) *Pane {
	return &Pane{
		id:       PaneID(uuid.NewString()),
		typeName: typeName,
		hint:     hint,
		app:      app,
		ready:    make(chan struct{}),
	}
}

func (p *Pane) ID() PaneID         { return p.id }
func (p *Pane) TypeName() string   { return p.typeName }
func (p *Pane) SizeHint() SizeHint { return p.hint }
func (p *Pane) App() App           { return p.app }
func (p *Pane) Region() Rect       { return p.region }
func (p *Pane) Focused() bool      { return p.focused }
func (p *Pane) Disposed() bool     { return p.disposed }

// Title returns the hosted app's title, falling back to the pane type name.
func (p *Pane) Title() string {
	if p.app != nil {
		return p.app.GetTitle()
	}
	return p.typeName
}

// LayoutReady is closed once the pane has received its first region. The
// coordinator waits on it (bounded) before restoring inner focus.
func (p *Pane) LayoutReady() <-chan struct{} {
	return p.ready
}

// setRegion records the computed region and resizes the hosted app to the
// drawable area inside the pane border. The first assignment completes the
// pane's initial layout.
func (p *Pane) setRegion(r Rect) {
	p.region = r
	if p.app != nil {
		cols := r.W - 2
		rows := r.H - 2
		if cols < 0 {
			cols = 0
		}
		if rows < 0 {
			rows = 0
		}
		p.app.Resize(cols, rows)
	}
	p.readyOnce.Do(func() { close(p.ready) })
}

func (p *Pane) setFocused(focused bool) {
	p.focused = focused
}

// dispose stops the hosted app. Safe to call more than once.
func (p *Pane) dispose(lifecycle AppLifecycle) {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.app != nil && lifecycle != nil {
		lifecycle.StopApp(p.app)
	}
}
