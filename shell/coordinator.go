// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/coordinator.go
// Summary: Orchestrates switching among the numbered workspaces.

package shell

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/tteejj/supertui-sub003/store"
)

// DefaultWorkspaceCount is the number of addressable workspaces.
const DefaultWorkspaceCount = 9

// DefaultFocusWaitTimeout bounds how long focus restoration waits for the
// target pane's first layout pass after a switch.
const DefaultFocusWaitTimeout = 250 * time.Millisecond

// WorkspaceStatus is a workspace's lifecycle state.
type WorkspaceStatus int

const (
	WorkspaceInactive WorkspaceStatus = iota
	WorkspaceRestoring
	WorkspaceActive
)

func (s WorkspaceStatus) String() string {
	switch s {
	case WorkspaceRestoring:
		return "restoring"
	case WorkspaceActive:
		return "active"
	default:
		return "inactive"
	}
}

// Coordinator switches the pane manager between persisted workspaces. At most
// one workspace is Restoring at a time; switch requests arriving while one is
// in flight are rejected as no-ops.
type Coordinator struct {
	manager  *PaneManager
	store    *store.Store
	factory  PaneFactory
	bus      *Dispatcher
	contexts *store.ContextCatalog

	count      int
	current    int
	status     []WorkspaceStatus
	names      []string
	contextIDs []string

	switching atomic.Bool

	// FocusWaitTimeout bounds the wait for the restored pane's first layout
	// signal before falling back to container focus.
	FocusWaitTimeout time.Duration
}

// NewCoordinator creates a coordinator over count workspaces. Workspace 0
// starts Active and empty.
func NewCoordinator(manager *PaneManager, st *store.Store, factory PaneFactory, bus *Dispatcher, count int) *Coordinator {
	if count < 1 {
		count = DefaultWorkspaceCount
	}
	c := &Coordinator{
		manager:          manager,
		store:            st,
		factory:          factory,
		bus:              bus,
		count:            count,
		status:           make([]WorkspaceStatus, count),
		names:            make([]string, count),
		contextIDs:       make([]string, count),
		FocusWaitTimeout: DefaultFocusWaitTimeout,
	}
	for i := range c.names {
		c.names[i] = fmt.Sprintf("workspace %d", i+1)
	}
	c.status[0] = WorkspaceActive
	return c
}

// SetContextCatalog attaches the catalog used to validate saved context ids.
// Optional; without it context ids pass through unvalidated.
func (c *Coordinator) SetContextCatalog(catalog *store.ContextCatalog) {
	c.contexts = catalog
}

// Count returns the number of addressable workspaces.
func (c *Coordinator) Count() int { return c.count }

// Current returns the active workspace index.
func (c *Coordinator) Current() int { return c.current }

// Status returns the lifecycle state of a workspace.
func (c *Coordinator) Status(index int) WorkspaceStatus {
	if index < 0 || index >= c.count {
		return WorkspaceInactive
	}
	return c.status[index]
}

// SetContextID pins the active workspace to a context id.
func (c *Coordinator) SetContextID(id string) {
	c.contextIDs[c.current] = id
}

// ContextID returns the active workspace's context id, if any.
func (c *Coordinator) ContextID() string {
	return c.contextIDs[c.current]
}

// RestoreInitial loads the first workspace's persisted state at startup.
func (c *Coordinator) RestoreInitial() {
	c.status[c.current] = WorkspaceRestoring
	st := c.store.Load(c.current)
	c.applyState(c.current, st)
	c.status[c.current] = WorkspaceActive
}

// SwitchTo saves the active workspace, tears down its panes and rebuilds the
// target workspace from its persisted state. Switches are serialized: a
// request arriving mid-switch is logged and dropped. A switch cannot be
// canceled once started.
func (c *Coordinator) SwitchTo(index int) error {
	if index < 0 || index >= c.count {
		return fmt.Errorf("workspace index %d out of range [0,%d)", index, c.count)
	}
	if index == c.current {
		return nil
	}
	if !c.switching.CompareAndSwap(false, true) {
		log.Printf("Coordinator: switch to %d rejected, another switch is in flight", index)
		return nil
	}
	defer c.switching.Store(false)

	from := c.current
	if err := c.SaveCurrent(); err != nil {
		// Persistence trouble must not strand the user on the old workspace.
		log.Printf("Coordinator: saving workspace %d failed: %v", from, err)
	}
	c.status[from] = WorkspaceInactive
	c.manager.CloseAll()

	c.status[index] = WorkspaceRestoring
	st := c.store.Load(index)
	c.applyState(index, st)

	c.current = index
	c.status[index] = WorkspaceActive
	c.bus.Broadcast(Event{Type: EventWorkspaceSwitched, FromWorkspace: from, ToWorkspace: index})
	log.Printf("Coordinator: switched workspace %d -> %d (%d panes)", from, index, c.manager.Len())
	return nil
}

// SaveCurrent persists the active workspace's snapshot.
func (c *Coordinator) SaveCurrent() error {
	st := c.manager.GetState()
	st.Name = c.names[c.current]
	st.Index = c.current
	st.ContextID = c.contextIDs[c.current]
	st.LastModified = time.Now().UTC()
	return c.store.Save(c.current, st)
}

// applyState rebuilds panes from a loaded snapshot and restores focus. A
// saved context id that no longer resolves is dropped with a log line.
func (c *Coordinator) applyState(index int, st store.WorkspaceState) {
	if st.Name != "" {
		c.names[index] = st.Name
	}
	c.contextIDs[index] = c.resolveContext(st.ContextID)

	c.manager.RestoreState(st, c.factory)
	c.restoreFocus(st.FocusedIndex)
}

func (c *Coordinator) resolveContext(id string) string {
	if id == "" || c.contexts == nil {
		return id
	}
	_, ok, err := c.contexts.Lookup(id)
	if err != nil {
		log.Printf("Coordinator: context lookup failed for %s: %v", id, err)
		return ""
	}
	if !ok {
		log.Printf("Coordinator: dropping stale context id %s", id)
		return ""
	}
	return id
}

// restoreFocus applies the saved focus index, clamped to the rebuilt list,
// and waits (bounded) for the target pane's first layout pass so focus lands
// on laid-out content. On timeout the pane container keeps focus.
func (c *Coordinator) restoreFocus(savedIndex int) {
	c.manager.FocusIndex(savedIndex)
	p := c.manager.FocusedPane()
	if p == nil {
		return
	}
	select {
	case <-p.LayoutReady():
	case <-time.After(c.FocusWaitTimeout):
		log.Printf("Coordinator: pane '%s' missed its first layout window, focusing container", p.Title())
	}
}
