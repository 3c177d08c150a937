// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Closed registration table mapping pane type names to app factories.

package registry

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/tteejj/supertui-sub003/shell"
)

// AppFactory creates a new app instance for a fresh pane.
type AppFactory func() shell.App

// Info describes a registered pane type for listings and pickers.
type Info struct {
	Name        string
	DisplayName string
	Category    string
	Hint        shell.SizeHint
}

type entry struct {
	info    Info
	factory AppFactory
}

// Registry is the set of known pane types. Only names registered here can be
// opened or restored; unknown names coming out of a snapshot are skipped.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a pane type. Re-registering a name replaces the previous
// factory, which is how a config override shadows a builtin.
func (r *Registry) Register(info Info, factory AppFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info.DisplayName == "" {
		info.DisplayName = info.Name
	}
	if info.Category == "" {
		info.Category = "other"
	}
	r.entries[info.Name] = entry{info: info, factory: factory}
	log.Printf("Registry: registered pane type '%s'", info.Name)
}

// HasPaneType reports whether name is registered.
func (r *Registry) HasPaneType(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// CreatePane builds a pane wrapping a fresh app of the named type.
func (r *Registry) CreatePane(name string) (*shell.Pane, error) {
	r.mu.RLock()
	ent, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown pane type %q", name)
	}
	app := ent.factory()
	if app == nil {
		return nil, fmt.Errorf("registry: factory for %q returned no app", name)
	}
	return shell.NewPane(name, ent.info.Hint, app), nil
}

// List returns all registered types sorted by display name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.entries))
	for _, ent := range r.entries {
		infos = append(infos, ent.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].DisplayName < infos[j].DisplayName
	})
	return infos
}

// ListByCategory groups registered types by category for menu display.
func (r *Registry) ListByCategory() map[string][]Info {
	categories := make(map[string][]Info)
	for _, info := range r.List() {
		categories[info.Category] = append(categories[info.Category], info)
	}
	return categories
}

// Count returns the number of registered pane types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
