// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/engine.go
// Summary: Single-owner operation loop: one goroutine owns all pane, layout
// and focus state and consumes screen events and posted operations.

package shell

import (
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Engine runs the shell. Every mutation of pane/layout/focus state happens on
// the goroutine inside Run, so concurrent access is structurally impossible
// rather than forbidden by convention. Background work posts operations via
// Post to get back onto the loop.
type Engine struct {
	driver      ScreenDriver
	manager     *PaneManager
	coordinator *Coordinator
	factory     PaneFactory
	bus         *Dispatcher

	// DefaultPaneType is opened by the new-pane keybinding.
	DefaultPaneType string
	// FallbackPaneType is offered when the active workspace becomes empty.
	// Empty string disables the fallback.
	FallbackPaneType string

	ops      chan func()
	refresh  chan bool
	quit     chan struct{}
	quitOnce sync.Once
}

// NewEngine initializes the driver and wires the manager to it.
func NewEngine(driver ScreenDriver, manager *PaneManager, coordinator *Coordinator, factory PaneFactory, bus *Dispatcher) (*Engine, error) {
	if err := driver.Init(); err != nil {
		return nil, err
	}
	driver.SetStyle(tcell.StyleDefault)
	driver.HideCursor()

	e := &Engine{
		driver:      driver,
		manager:     manager,
		coordinator: coordinator,
		factory:     factory,
		bus:         bus,
		ops:         make(chan func(), 16),
		refresh:     make(chan bool, 1),
		quit:        make(chan struct{}),
	}
	manager.SetRefreshNotifier(e.refresh)
	w, h := driver.Size()
	manager.SetBounds(Rect{W: w, H: h})
	return e, nil
}

// Post schedules an operation onto the engine loop. This is the only legal
// way for pane background work to touch shared state.
func (e *Engine) Post(op func()) {
	select {
	case e.ops <- op:
	case <-e.quit:
	}
}

// Quit stops the engine loop. Safe to call from any goroutine.
func (e *Engine) Quit() {
	e.quitOnce.Do(func() { close(e.quit) })
}

// Run is the main loop. It returns when Quit is called.
func (e *Engine) Run() error {
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := e.driver.PollEvent()
			select {
			case events <- ev:
			case <-e.quit:
				// Nobody is draining events anymore; don't block forever.
				return
			}
		}
	}()

	e.ensureFallbackPane()
	e.draw()

	for {
		select {
		case <-e.quit:
			return nil
		case op := <-e.ops:
			op()
			e.draw()
		case ev := <-events:
			e.handleEvent(ev)
			e.draw()
		case <-e.refresh:
			e.draw()
		}
	}
}

// OpenPaneByName constructs a pane of the named type and installs it. A
// construction failure aborts before any manager mutation; the condition is
// transient, so it is logged and broadcast for status display, never fatal.
func (e *Engine) OpenPaneByName(name string) {
	if !e.factory.HasPaneType(name) {
		log.Printf("Engine: no pane type %q registered", name)
		e.bus.Broadcast(Event{Type: EventPaneOpenFailed, PaneType: name})
		return
	}
	p, err := e.factory.CreatePane(name)
	if err != nil {
		log.Printf("Engine: opening %q failed: %v", name, err)
		e.bus.Broadcast(Event{Type: EventPaneOpenFailed, PaneType: name})
		return
	}
	e.manager.OpenPane(p)
}

// SwitchWorkspace delegates to the coordinator and then re-seeds the
// fallback pane if the restored workspace is empty.
func (e *Engine) SwitchWorkspace(index int) {
	if err := e.coordinator.SwitchTo(index); err != nil {
		log.Printf("Engine: %v", err)
		return
	}
	e.ensureFallbackPane()
}

func (e *Engine) ensureFallbackPane() {
	if e.FallbackPaneType == "" || e.manager.Len() > 0 {
		return
	}
	if !e.factory.HasPaneType(e.FallbackPaneType) {
		return
	}
	e.OpenPaneByName(e.FallbackPaneType)
}

func (e *Engine) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		e.manager.SetBounds(Rect{W: w, H: h})
	case *tcell.EventKey:
		e.handleKey(ev)
	}
}

// handleKey is the keybinding layer. The core only ever sees the discrete
// operations invoked below; physical key mapping stays here.
func (e *Engine) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlQ {
		e.Quit()
		return
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		move := ev.Modifiers()&tcell.ModShift != 0
		switch ev.Key() {
		case tcell.KeyUp:
			e.navigateOrMove(DirUp, move)
			return
		case tcell.KeyDown:
			e.navigateOrMove(DirDown, move)
			return
		case tcell.KeyLeft:
			e.navigateOrMove(DirLeft, move)
			return
		case tcell.KeyRight:
			e.navigateOrMove(DirRight, move)
			return
		case tcell.KeyEnter:
			e.OpenPaneByName(e.DefaultPaneType)
			return
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r >= '1' && r <= '9':
				e.SwitchWorkspace(int(r - '1'))
				return
			case r == 'w':
				e.manager.CloseFocusedPane()
				e.ensureFallbackPane()
				return
			}
		}
	}

	if p := e.manager.FocusedPane(); p != nil && p.App() != nil {
		p.App().HandleKey(ev)
	}
}

func (e *Engine) navigateOrMove(d Direction, move bool) {
	if move {
		e.manager.MovePane(d)
	} else {
		e.manager.NavigateFocus(d)
	}
}

func (e *Engine) draw() {
	w, h := e.driver.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e.driver.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	for _, p := range e.manager.Panes() {
		drawPane(e.driver, p, w, h)
	}
	e.driver.Show()
}
