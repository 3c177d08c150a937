// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/dispatcher.go
// Summary: Event bus connecting the core to non-core widgets.

package shell

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	EventPaneOpened EventType = iota
	EventPaneClosed
	EventPaneFocusChanged
	EventWorkspaceSwitched
	// EventPaneOpenFailed reports a pane that could not be constructed. The
	// workspace is unchanged; status widgets may show the failure.
	EventPaneOpenFailed
)

// Event is a notification published by the core. Non-core widgets (status
// displays, palettes) subscribe without the core depending on them.
type Event struct {
	Type EventType

	// Pane identifies the opened/closed pane, or the newly focused pane for
	// EventPaneFocusChanged. Empty when focus moved to "none".
	Pane PaneID
	// PrevPane is the previously focused pane for EventPaneFocusChanged.
	PrevPane PaneID

	// PaneType is the requested type name for EventPaneOpenFailed.
	PaneType string

	// Workspace indices for EventWorkspaceSwitched.
	FromWorkspace int
	ToWorkspace   int
}

// Listener receives broadcast events.
type Listener interface {
	OnEvent(event Event)
}

// Subscription is the handle returned at subscribe time. The owner must call
// Cancel when done; lifetime ownership is explicit rather than left to the
// collector.
type Subscription struct {
	bus  *Dispatcher
	id   uint64
	once sync.Once
}

// Cancel removes the subscription from the bus. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.remove(s.id)
	})
}

// Dispatcher manages listeners and broadcasts events to them in subscribe
// order.
type Dispatcher struct {
	mu        sync.RWMutex
	nextID    uint64
	order     []uint64
	listeners map[uint64]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[uint64]Listener)}
}

// Subscribe adds a listener and returns its cancellation handle.
func (d *Dispatcher) Subscribe(listener Listener) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.order = append(d.order, id)
	d.listeners[id] = listener
	return &Subscription{bus: d, id: id}
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *Dispatcher) Broadcast(event Event) {
	d.mu.RLock()
	ls := make([]Listener, 0, len(d.order))
	for _, id := range d.order {
		if l, ok := d.listeners[id]; ok {
			ls = append(ls, l)
		}
	}
	d.mu.RUnlock()
	for _, l := range ls {
		l.OnEvent(event)
	}
}
