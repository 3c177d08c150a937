// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/helpers_test.go
// Summary: Shared fakes for shell tests.

package shell

import (
	"encoding/json"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/tteejj/supertui-sub003/store"
)

// fakeApp is a minimal App that records what the shell does to it.
type fakeApp struct {
	title      string
	cols, rows int
	stopped    bool
	keys       []rune
	refresh    chan<- bool
}

func (a *fakeApp) Run() error                        { return nil }
func (a *fakeApp) Stop()                             { a.stopped = true }
func (a *fakeApp) Resize(cols, rows int)             { a.cols, a.rows = cols, rows }
func (a *fakeApp) Render() [][]Cell                  { return nil }
func (a *fakeApp) GetTitle() string                  { return a.title }
func (a *fakeApp) HandleKey(ev *tcell.EventKey)      { a.keys = append(a.keys, ev.Rune()) }
func (a *fakeApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }

// statefulApp additionally round-trips a JSON blob.
type statefulApp struct {
	fakeApp
	Payload string `json:"payload"`
}

func (a *statefulApp) SaveState() json.RawMessage {
	data, _ := json.Marshal(struct {
		Payload string `json:"payload"`
	}{a.Payload})
	return data
}

func (a *statefulApp) RestoreState(blob json.RawMessage) error {
	return json.Unmarshal(blob, a)
}

// fakeFactory builds fakeApp panes for a fixed set of type names.
type fakeFactory struct {
	known    map[string]bool
	failing  map[string]bool
	stateful map[string]bool
	made     []string
}

func newFakeFactory(names ...string) *fakeFactory {
	f := &fakeFactory{
		known:    make(map[string]bool),
		failing:  make(map[string]bool),
		stateful: make(map[string]bool),
	}
	for _, n := range names {
		f.known[n] = true
	}
	return f
}

func (f *fakeFactory) HasPaneType(name string) bool { return f.known[name] }

func (f *fakeFactory) CreatePane(name string) (*Pane, error) {
	if !f.known[name] {
		return nil, errors.New("unknown pane type")
	}
	if f.failing[name] {
		return nil, errors.New("construction failed")
	}
	f.made = append(f.made, name)
	var app App
	if f.stateful[name] {
		app = &statefulApp{fakeApp: fakeApp{title: name}}
	} else {
		app = &fakeApp{title: name}
	}
	return NewPane(name, SizeFlex, app), nil
}

// eventRecorder captures dispatcher traffic in order.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(ev Event) { r.events = append(r.events, ev) }

func (r *eventRecorder) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// stubDriver satisfies ScreenDriver without a terminal.
type stubDriver struct {
	width, height int
	events        chan tcell.Event
}

func newStubDriver(w, h int) *stubDriver {
	return &stubDriver{width: w, height: h, events: make(chan tcell.Event, 16)}
}

func (d *stubDriver) Init() error                { return nil }
func (d *stubDriver) Fini()                      {}
func (d *stubDriver) Size() (int, int)           { return d.width, d.height }
func (d *stubDriver) SetStyle(style tcell.Style) {}
func (d *stubDriver) HideCursor()                {}
func (d *stubDriver) Show()                      {}
func (d *stubDriver) PollEvent() tcell.Event     { return <-d.events }
func (d *stubDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
}

// newTestManager wires a manager with a recorder bus and reasonable bounds.
func newTestManager() (*PaneManager, *eventRecorder, *Dispatcher) {
	bus := NewDispatcher()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	m := NewPaneManager(NoopAppLifecycle{}, bus)
	m.SetBounds(Rect{X: 0, Y: 0, W: 200, H: 100})
	return m, rec, bus
}

// openTestPane adds a fakeApp pane with the given type name.
func openTestPane(m *PaneManager, name string) *Pane {
	p := NewPane(name, SizeFlex, &fakeApp{title: name})
	m.OpenPane(p)
	return p
}

// m0State builds a snapshot listing the given pane types in order.
func m0State(types ...string) store.WorkspaceState {
	st := store.WorkspaceState{LayoutMode: "auto"}
	for _, typ := range types {
		st.Panes = append(st.Panes, store.PaneEntry{TypeName: typ})
	}
	return st
}
