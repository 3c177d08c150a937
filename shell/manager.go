// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/manager.go
// Summary: Owns the live ordered pane list and focus pointer; drives the
// layout engine and the focus navigator.

package shell

import (
	"log"

	"github.com/tteejj/supertui-sub003/store"
)

// PaneFactory constructs pane handles from persisted type names. Consumed by
// the manager on restore and by the engine when the user opens a pane.
type PaneFactory interface {
	CreatePane(typeName string) (*Pane, error)
	HasPaneType(name string) bool
}

// PaneManager owns the ordered pane collection and the focus pointer for the
// active workspace. All methods must be called from the shell's operation
// loop; the manager carries no internal locking for pane/layout/focus state.
type PaneManager struct {
	lifecycle AppLifecycle
	bus       *Dispatcher
	engine    *LayoutEngine
	nav       *Navigator

	bounds  Rect
	mode    LayoutMode
	panes   []*Pane
	focus   int // index into panes, -1 when empty
	regions map[PaneID]Rect

	refresh chan<- bool
}

// NewPaneManager creates an empty manager. The dispatcher receives the
// pane-level notifications; the lifecycle starts and stops hosted apps.
func NewPaneManager(lifecycle AppLifecycle, bus *Dispatcher) *PaneManager {
	return &PaneManager{
		lifecycle: lifecycle,
		bus:       bus,
		engine:    NewLayoutEngine(),
		nav:       NewNavigator(),
		focus:     -1,
		mode:      LayoutAuto,
		regions:   make(map[PaneID]Rect),
	}
}

// SetRefreshNotifier sets the channel handed to every app attached from now
// on.
func (m *PaneManager) SetRefreshNotifier(ch chan<- bool) {
	m.refresh = ch
}

// SetBounds updates the container bounds and recomputes the layout.
func (m *PaneManager) SetBounds(bounds Rect) {
	m.bounds = bounds
	m.recomputeLayout()
}

// Bounds returns the current container bounds.
func (m *PaneManager) Bounds() Rect { return m.bounds }

// SetLayoutMode pins a layout mode and recomputes the layout.
func (m *PaneManager) SetLayoutMode(mode LayoutMode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.recomputeLayout()
}

// Mode returns the current layout mode.
func (m *PaneManager) Mode() LayoutMode { return m.mode }

// Panes returns the ordered pane list. The returned slice is a copy; the
// panes themselves are shared.
func (m *PaneManager) Panes() []*Pane {
	out := make([]*Pane, len(m.panes))
	copy(out, m.panes)
	return out
}

// Len returns the number of open panes.
func (m *PaneManager) Len() int { return len(m.panes) }

// Regions returns a copy of the current region map.
func (m *PaneManager) Regions() map[PaneID]Rect {
	out := make(map[PaneID]Rect, len(m.regions))
	for id, r := range m.regions {
		out[id] = r
	}
	return out
}

// FocusedPane returns the focused pane, or nil when no pane is open.
func (m *PaneManager) FocusedPane() *Pane {
	if m.focus < 0 || m.focus >= len(m.panes) {
		return nil
	}
	return m.panes[m.focus]
}

// OpenPane installs an already-constructed handle: appends it to the list,
// recomputes the layout, focuses it and emits PaneOpened. Handle construction
// happens before this call, so a factory failure never mutates manager state.
func (m *PaneManager) OpenPane(p *Pane) {
	if p == nil || p.Disposed() {
		return
	}
	if p.app != nil {
		p.app.SetRefreshNotifier(m.refresh)
	}
	m.panes = append(m.panes, p)
	m.recomputeLayout()
	if p.app != nil && m.lifecycle != nil {
		m.lifecycle.StartApp(p.app)
	}
	m.bus.Broadcast(Event{Type: EventPaneOpened, Pane: p.ID()})
	m.setFocus(len(m.panes) - 1)
	log.Printf("PaneManager: opened pane '%s' (%s)", p.Title(), p.ID())
}

// ClosePane removes the handle from the list and disposes it. A handle that
// is not present is a no-op, not an error: no state change, no event.
func (m *PaneManager) ClosePane(p *Pane) {
	idx := m.indexOf(p)
	if idx < 0 {
		return
	}
	m.closeAt(idx)
}

// CloseFocusedPane closes the currently focused pane, if any.
func (m *PaneManager) CloseFocusedPane() {
	if m.focus < 0 {
		return
	}
	m.closeAt(m.focus)
}

func (m *PaneManager) closeAt(idx int) {
	p := m.panes[idx]
	m.panes = append(m.panes[:idx], m.panes[idx+1:]...)
	p.setFocused(false)
	p.dispose(m.lifecycle)
	m.recomputeLayout()
	m.bus.Broadcast(Event{Type: EventPaneClosed, Pane: p.ID()})

	// Focus moves to the pane now occupying the same list index, clamped.
	next := idx
	if next >= len(m.panes) {
		next = len(m.panes) - 1
	}
	m.setFocus(next)
	log.Printf("PaneManager: closed pane '%s' (%s)", p.Title(), p.ID())
}

// CloseAll disposes every open pane, in order, and clears focus. Used by the
// coordinator on switch-away.
func (m *PaneManager) CloseAll() {
	for _, p := range m.panes {
		p.setFocused(false)
		p.dispose(m.lifecycle)
		m.bus.Broadcast(Event{Type: EventPaneClosed, Pane: p.ID()})
	}
	m.panes = nil
	m.recomputeLayout()
	m.setFocus(-1)
}

// FocusPane focuses the given handle directly. Unknown handles are ignored.
func (m *PaneManager) FocusPane(p *Pane) {
	idx := m.indexOf(p)
	if idx < 0 {
		return
	}
	m.setFocus(idx)
}

// FocusIndex focuses the pane at the given list index, clamped to the list
// bounds. Used by the coordinator when restoring a saved focus index.
func (m *PaneManager) FocusIndex(idx int) {
	if len(m.panes) == 0 {
		m.setFocus(-1)
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.panes) {
		idx = len(m.panes) - 1
	}
	m.setFocus(idx)
}

// NavigateFocus moves focus to the pane in the given direction. On an empty
// manager this is a documented no-op.
func (m *PaneManager) NavigateFocus(d Direction) {
	cur := m.FocusedPane()
	if cur == nil {
		return
	}
	target := m.nav.FindInDirection(cur.ID(), d, m.regions)
	if target == cur.ID() {
		return
	}
	m.setFocus(m.indexOfID(target))
}

// MovePane swaps the list positions of the focused pane and its directional
// neighbor, recomputes the layout and keeps the moved pane focused, so the
// tile slides into the neighbor's slot.
func (m *PaneManager) MovePane(d Direction) {
	cur := m.FocusedPane()
	if cur == nil {
		return
	}
	target := m.nav.FindInDirection(cur.ID(), d, m.regions)
	if target == cur.ID() {
		return
	}
	i, j := m.focus, m.indexOfID(target)
	if j < 0 {
		return
	}
	m.panes[i], m.panes[j] = m.panes[j], m.panes[i]
	m.focus = j
	m.recomputeLayout()
	log.Printf("PaneManager: moved pane '%s' %s", cur.Title(), d)
}

// GetState snapshots the ordered pane-type list, per-pane state blobs, the
// focused index and the layout mode. The coordinator fills in workspace
// identity before persisting.
func (m *PaneManager) GetState() store.WorkspaceState {
	st := store.WorkspaceState{
		Panes:        make([]store.PaneEntry, 0, len(m.panes)),
		FocusedIndex: m.focus,
		LayoutMode:   m.mode.String(),
	}
	for _, p := range m.panes {
		entry := store.PaneEntry{TypeName: p.TypeName()}
		if saver, ok := p.app.(StateSaver); ok {
			entry.State = saver.SaveState()
		}
		st.Panes = append(st.Panes, entry)
	}
	return st
}

// RestoreState rebuilds panes from a snapshot, in order, via the factory.
// Unknown pane types and construction failures skip the entry with a log
// line; the rest of the workspace still restores. The saved focus index is
// applied clamped to the rebuilt list.
func (m *PaneManager) RestoreState(st store.WorkspaceState, factory PaneFactory) {
	m.SetLayoutMode(ParseLayoutMode(st.LayoutMode))
	for _, entry := range st.Panes {
		if !factory.HasPaneType(entry.TypeName) {
			log.Printf("PaneManager: skipping unknown pane type %q", entry.TypeName)
			continue
		}
		p, err := factory.CreatePane(entry.TypeName)
		if err != nil {
			log.Printf("PaneManager: pane %q construction failed: %v", entry.TypeName, err)
			continue
		}
		if len(entry.State) > 0 {
			if restorer, ok := p.App().(StateRestorer); ok {
				if err := restorer.RestoreState(entry.State); err != nil {
					log.Printf("PaneManager: pane %q state restore failed: %v", entry.TypeName, err)
				}
			}
		}
		m.OpenPane(p)
	}
	m.FocusIndex(st.FocusedIndex)
}

func (m *PaneManager) recomputeLayout() {
	order := make([]PaneID, len(m.panes))
	for i, p := range m.panes {
		order[i] = p.ID()
	}
	m.regions = m.engine.Compute(order, m.bounds, m.mode)
	for _, p := range m.panes {
		if r, ok := m.regions[p.ID()]; ok {
			p.setRegion(r)
		}
	}
}

// setFocus moves the focus pointer, updates pane active flags and emits
// PaneFocusChanged when the focused pane actually changed.
func (m *PaneManager) setFocus(idx int) {
	prev := m.FocusedPane()
	if idx < 0 || idx >= len(m.panes) {
		idx = -1
	}
	m.focus = idx
	next := m.FocusedPane()
	if prev == next {
		return
	}
	var prevID, nextID PaneID
	if prev != nil {
		prev.setFocused(false)
		prevID = prev.ID()
	}
	if next != nil {
		next.setFocused(true)
		nextID = next.ID()
	}
	m.bus.Broadcast(Event{Type: EventPaneFocusChanged, Pane: nextID, PrevPane: prevID})
}

func (m *PaneManager) indexOf(p *Pane) int {
	for i, q := range m.panes {
		if q == p {
			return i
		}
	}
	return -1
}

func (m *PaneManager) indexOfID(id PaneID) int {
	for i, q := range m.panes {
		if q.ID() == id {
			return i
		}
	}
	return -1
}
