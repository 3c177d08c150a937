// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/manager_test.go

package shell

import (
	"encoding/json"
	"testing"
)

func TestOpenPaneFocusesNewest(t *testing.T) {
	m, rec, _ := newTestManager()

	a := openTestPane(m, "alpha")
	b := openTestPane(m, "beta")

	if m.Len() != 2 {
		t.Fatalf("expected 2 panes, got %d", m.Len())
	}
	if m.FocusedPane() != b {
		t.Fatalf("newest pane should be focused")
	}
	if a.Focused() || !b.Focused() {
		t.Fatalf("focus flags wrong: a=%v b=%v", a.Focused(), b.Focused())
	}

	opened := rec.ofType(EventPaneOpened)
	if len(opened) != 2 || opened[0].Pane != a.ID() || opened[1].Pane != b.ID() {
		t.Fatalf("unexpected PaneOpened events: %+v", opened)
	}
}

func TestOpenPaneResizesToInnerArea(t *testing.T) {
	m, _, _ := newTestManager()
	p := openTestPane(m, "alpha")

	app := p.App().(*fakeApp)
	r := p.Region()
	if app.cols != r.W-2 || app.rows != r.H-2 {
		t.Fatalf("app sized %dx%d for region %+v", app.cols, app.rows, r)
	}

	select {
	case <-p.LayoutReady():
	default:
		t.Fatalf("pane should signal its first layout")
	}
}

func TestCloseReassignsFocusToSameIndex(t *testing.T) {
	m, _, _ := newTestManager()
	openTestPane(m, "alpha")
	openTestPane(m, "beta")
	c := openTestPane(m, "gamma")

	m.FocusIndex(1)
	m.CloseFocusedPane()

	if m.Len() != 2 {
		t.Fatalf("expected 2 panes after close, got %d", m.Len())
	}
	// gamma slid into index 1 and inherits focus.
	if m.FocusedPane() != c {
		t.Fatalf("focus should move to the pane now at the closed index")
	}
}

func TestCloseLastPaneClampsFocus(t *testing.T) {
	m, _, _ := newTestManager()
	openTestPane(m, "alpha")
	b := openTestPane(m, "beta")
	openTestPane(m, "gamma")

	m.FocusIndex(2)
	m.CloseFocusedPane()

	if m.FocusedPane() != b {
		t.Fatalf("closing the last pane should focus its predecessor")
	}
}

func TestCloseAbsentPaneIsNoOp(t *testing.T) {
	m, rec, _ := newTestManager()
	openTestPane(m, "alpha")
	before := len(rec.events)

	stranger := NewPane("beta", SizeFlex, &fakeApp{title: "beta"})
	m.ClosePane(stranger)

	if m.Len() != 1 {
		t.Fatalf("pane list changed on absent close")
	}
	if len(rec.events) != before {
		t.Fatalf("absent close must not emit events, got %+v", rec.events[before:])
	}
}

func TestCloseStopsApp(t *testing.T) {
	bus := NewDispatcher()
	m := NewPaneManager(&LocalAppLifecycle{}, bus)
	m.SetBounds(Rect{W: 200, H: 100})

	app := &fakeApp{title: "alpha"}
	p := NewPane("alpha", SizeFlex, app)
	m.OpenPane(p)
	m.ClosePane(p)

	if !app.stopped {
		t.Fatalf("closing a pane must stop its app")
	}
	if !p.Disposed() {
		t.Fatalf("closed pane should be disposed")
	}
}

func TestCloseAllEmptiesAndClearsFocus(t *testing.T) {
	m, _, _ := newTestManager()
	openTestPane(m, "alpha")
	openTestPane(m, "beta")

	m.CloseAll()

	if m.Len() != 0 || m.FocusedPane() != nil {
		t.Fatalf("CloseAll left panes or focus behind")
	}
}

func TestNavigateOnEmptyManagerIsNoOp(t *testing.T) {
	m, rec, _ := newTestManager()
	m.NavigateFocus(DirRight)
	if len(rec.events) != 0 {
		t.Fatalf("navigation on empty manager emitted events: %+v", rec.events)
	}
}

func TestNavigateFocusEmitsChange(t *testing.T) {
	m, rec, _ := newTestManager()
	a := openTestPane(m, "alpha")
	b := openTestPane(m, "beta") // focused, right column under auto layout

	m.NavigateFocus(DirLeft)

	if m.FocusedPane() != a {
		t.Fatalf("expected focus on the left pane")
	}
	changes := rec.ofType(EventPaneFocusChanged)
	last := changes[len(changes)-1]
	if last.Pane != a.ID() || last.PrevPane != b.ID() {
		t.Fatalf("focus change event wrong: %+v", last)
	}
}

func TestMovePaneSwapsTiles(t *testing.T) {
	m, _, _ := newTestManager()
	a := openTestPane(m, "alpha") // left column
	b := openTestPane(m, "beta")  // right column

	m.FocusIndex(0)
	rightBefore := b.Region()

	m.MovePane(DirRight)

	panes := m.Panes()
	if panes[0] != b || panes[1] != a {
		t.Fatalf("move should swap list positions")
	}
	if m.FocusedPane() != a {
		t.Fatalf("moved pane must keep focus")
	}
	if a.Region() != rightBefore {
		t.Fatalf("moved pane should occupy the neighbor's tile, got %+v", a.Region())
	}
}

func TestMoveWithoutNeighborWraps(t *testing.T) {
	m, _, _ := newTestManager()
	a := openTestPane(m, "alpha")
	openTestPane(m, "beta")

	m.FocusIndex(1)
	// Moving right from the rightmost pane wraps, swapping with the leftmost.
	m.MovePane(DirRight)
	if m.Panes()[1] != a {
		t.Fatalf("wraparound move should swap with the far pane")
	}
}

func TestGetStateSnapshotsOrderFocusAndMode(t *testing.T) {
	m, _, _ := newTestManager()
	m.SetLayoutMode(LayoutGrid)
	openTestPane(m, "alpha")
	openTestPane(m, "beta")
	m.FocusIndex(0)

	st := m.GetState()

	if len(st.Panes) != 2 || st.Panes[0].TypeName != "alpha" || st.Panes[1].TypeName != "beta" {
		t.Fatalf("snapshot panes wrong: %+v", st.Panes)
	}
	if st.FocusedIndex != 0 {
		t.Fatalf("snapshot focus = %d, want 0", st.FocusedIndex)
	}
	if st.LayoutMode != "grid" {
		t.Fatalf("snapshot mode = %q, want grid", st.LayoutMode)
	}
}

func TestStateRoundTripThroughFactory(t *testing.T) {
	factory := newFakeFactory("alpha", "beta")
	factory.stateful["beta"] = true

	m, _, _ := newTestManager()
	openTestPane(m, "alpha")
	stApp := &statefulApp{fakeApp: fakeApp{title: "beta"}, Payload: "hello"}
	m.OpenPane(NewPane("beta", SizeFlex, stApp))
	m.FocusIndex(1)

	snapshot := m.GetState()

	restored, _, _ := newTestManager()
	restored.RestoreState(snapshot, factory)

	if restored.Len() != 2 {
		t.Fatalf("expected 2 restored panes, got %d", restored.Len())
	}
	panes := restored.Panes()
	if panes[0].TypeName() != "alpha" || panes[1].TypeName() != "beta" {
		t.Fatalf("restored order wrong")
	}
	if restored.FocusedPane() != panes[1] {
		t.Fatalf("restored focus wrong")
	}
	got := panes[1].App().(*statefulApp)
	if got.Payload != "hello" {
		t.Fatalf("state blob not restored, payload %q", got.Payload)
	}
}

func TestRestoreSkipsUnknownAndFailingTypes(t *testing.T) {
	factory := newFakeFactory("alpha", "broken")
	factory.failing["broken"] = true

	snapshot := m0State("alpha", "mystery", "broken", "alpha")
	snapshot.FocusedIndex = 3

	m, _, _ := newTestManager()
	m.RestoreState(snapshot, factory)

	if m.Len() != 2 {
		t.Fatalf("expected the 2 restorable panes, got %d", m.Len())
	}
	for _, p := range m.Panes() {
		if p.TypeName() != "alpha" {
			t.Fatalf("unexpected restored type %q", p.TypeName())
		}
	}
	// Saved index 3 clamps to the rebuilt list.
	if m.FocusedPane() != m.Panes()[1] {
		t.Fatalf("focus should clamp to the last restored pane")
	}
}

func TestRestoreSurvivesBadStateBlob(t *testing.T) {
	factory := newFakeFactory("beta")
	factory.stateful["beta"] = true

	snapshot := m0State("beta")
	snapshot.Panes[0].State = json.RawMessage(`{not json`)

	m, _, _ := newTestManager()
	m.RestoreState(snapshot, factory)

	// A bad blob loses the pane's content, not the pane.
	if m.Len() != 1 {
		t.Fatalf("pane with corrupt blob should still open, got %d panes", m.Len())
	}
}
