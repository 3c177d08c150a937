// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/layout_test.go

package shell

import (
	"fmt"
	"reflect"
	"testing"
)

func paneIDs(n int) []PaneID {
	ids := make([]PaneID, n)
	for i := range ids {
		ids[i] = PaneID(fmt.Sprintf("pane-%02d", i))
	}
	return ids
}

// Containment + disjointness + matching total area together mean the regions
// tile the container exactly.
func checkExactCover(t *testing.T, regions map[PaneID]Rect, order []PaneID, bounds Rect) {
	t.Helper()

	if len(regions) != len(order) {
		t.Fatalf("got %d regions for %d panes", len(regions), len(order))
	}

	total := 0
	for _, id := range order {
		r, ok := regions[id]
		if !ok {
			t.Fatalf("no region for %s", id)
		}
		if r.W <= 0 || r.H <= 0 {
			t.Fatalf("degenerate region for %s: %+v", id, r)
		}
		if r.X < bounds.X || r.Y < bounds.Y || r.Right() > bounds.Right() || r.Bottom() > bounds.Bottom() {
			t.Fatalf("region for %s escapes bounds: %+v vs %+v", id, r, bounds)
		}
		total += r.Area()
	}
	if total != bounds.Area() {
		t.Fatalf("regions cover %d cells, container has %d", total, bounds.Area())
	}

	for i, a := range order {
		for _, b := range order[i+1:] {
			if regions[a].Overlaps(regions[b]) {
				t.Fatalf("regions for %s and %s overlap: %+v, %+v", a, b, regions[a], regions[b])
			}
		}
	}
}

func TestComputeTilesExactly(t *testing.T) {
	engine := NewLayoutEngine()
	bounds := Rect{X: 0, Y: 0, W: 210, H: 90}
	modes := []LayoutMode{LayoutAuto, LayoutMasterStack, LayoutWide, LayoutTall, LayoutGrid}

	for _, mode := range modes {
		for n := 1; n <= 8; n++ {
			t.Run(fmt.Sprintf("%s/%d", mode, n), func(t *testing.T) {
				order := paneIDs(n)
				regions := engine.Compute(order, bounds, mode)
				checkExactCover(t, regions, order, bounds)
			})
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	engine := NewLayoutEngine()
	regions := engine.Compute(nil, Rect{W: 100, H: 50}, LayoutAuto)
	if len(regions) != 0 {
		t.Fatalf("expected no regions, got %d", len(regions))
	}
}

func TestAutoArrangements(t *testing.T) {
	engine := NewLayoutEngine()
	bounds := Rect{X: 0, Y: 0, W: 200, H: 100}

	t.Run("single pane fills container", func(t *testing.T) {
		order := paneIDs(1)
		regions := engine.Compute(order, bounds, LayoutAuto)
		if regions[order[0]] != bounds {
			t.Fatalf("got %+v, want %+v", regions[order[0]], bounds)
		}
	})

	t.Run("two panes split side by side", func(t *testing.T) {
		order := paneIDs(2)
		regions := engine.Compute(order, bounds, LayoutAuto)
		left, right := regions[order[0]], regions[order[1]]
		if left.H != bounds.H || right.H != bounds.H {
			t.Fatalf("columns must be full height: %+v %+v", left, right)
		}
		if left.W != 100 || right.W != 100 {
			t.Fatalf("expected even split, got widths %d and %d", left.W, right.W)
		}
		if right.X != left.Right() {
			t.Fatalf("columns not adjacent: %+v %+v", left, right)
		}
	})

	t.Run("three panes use master plus stack", func(t *testing.T) {
		order := paneIDs(3)
		regions := engine.Compute(order, bounds, LayoutAuto)
		master := regions[order[0]]
		if master.W != 120 || master.H != bounds.H {
			t.Fatalf("master should take the 0.6 column: %+v", master)
		}
		top, bot := regions[order[1]], regions[order[2]]
		if top.X != 120 || bot.X != 120 {
			t.Fatalf("stack should sit right of master: %+v %+v", top, bot)
		}
		if bot.Y != top.Bottom() {
			t.Fatalf("stack rows not adjacent: %+v %+v", top, bot)
		}
	})

	t.Run("four panes form a 2x2 grid", func(t *testing.T) {
		order := paneIDs(4)
		regions := engine.Compute(order, bounds, LayoutAuto)
		if regions[order[0]].X != 0 || regions[order[1]].X != 100 {
			t.Fatalf("top row misplaced: %+v %+v", regions[order[0]], regions[order[1]])
		}
		if regions[order[2]].Y != 50 || regions[order[3]].Y != 50 {
			t.Fatalf("bottom row misplaced: %+v %+v", regions[order[2]], regions[order[3]])
		}
	})

	t.Run("seven panes use a three column grid", func(t *testing.T) {
		order := paneIDs(7)
		regions := engine.Compute(order, bounds, LayoutAuto)
		cols := map[int]bool{}
		for _, id := range order[:3] {
			cols[regions[id].X] = true
		}
		if len(cols) != 3 {
			t.Fatalf("first row should span 3 columns, got starts %v", cols)
		}
		// The short last row (one pane) widens to the full container.
		last := regions[order[6]]
		if last.W != bounds.W {
			t.Fatalf("trailing pane should fill its row, got %+v", last)
		}
	})
}

func TestComputeIsStable(t *testing.T) {
	engine := NewLayoutEngine()
	bounds := Rect{X: 0, Y: 0, W: 173, H: 57}
	order := paneIDs(5)

	first := engine.Compute(order, bounds, LayoutAuto)
	for i := 0; i < 10; i++ {
		again := engine.Compute(order, bounds, LayoutAuto)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("layout changed between identical computations")
		}
	}
}

func TestMinimumSizeClamp(t *testing.T) {
	engine := NewLayoutEngine()
	// Too small for four panes at minimum size: regions clamp and overflow.
	bounds := Rect{X: 0, Y: 0, W: 30, H: 10}
	order := paneIDs(4)
	regions := engine.Compute(order, bounds, LayoutAuto)
	for _, id := range order {
		r := regions[id]
		if r.W < MinPaneWidth || r.H < MinPaneHeight {
			t.Fatalf("region below minimum: %+v", r)
		}
	}
}

func TestLayoutModeRoundTrip(t *testing.T) {
	modes := []LayoutMode{LayoutAuto, LayoutMasterStack, LayoutWide, LayoutTall, LayoutGrid}
	for _, mode := range modes {
		if got := ParseLayoutMode(mode.String()); got != mode {
			t.Errorf("ParseLayoutMode(%q) = %v, want %v", mode.String(), got, mode)
		}
	}
	if got := ParseLayoutMode("no-such-mode"); got != LayoutAuto {
		t.Errorf("unknown mode should fall back to auto, got %v", got)
	}
}
