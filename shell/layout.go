// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/layout.go
// Summary: Pure tiling computation: ordered panes + container bounds -> regions.

package shell

import "math"

// Minimum usable pane dimensions (including borders). Regions are clamped to
// these; when the container cannot fit all minimums the clamped regions
// overflow it and the pane content clips instead of the engine failing.
const (
	MinPaneWidth  = 20
	MinPaneHeight = 8
)

// LayoutMode selects the tiling arrangement for a workspace.
type LayoutMode int

const (
	// LayoutAuto picks an arrangement from the pane count: 1 full, 2
	// side-by-side, 3 master plus two stacked, 4 a 2x2 grid, more a grid
	// with ceil(sqrt(N)) columns.
	LayoutAuto LayoutMode = iota
	// LayoutMasterStack keeps the first pane as a full-height master column
	// and stacks the rest to its right.
	LayoutMasterStack
	// LayoutWide gives the first pane the top half and rows the rest below.
	LayoutWide
	// LayoutTall stacks every pane in a single column.
	LayoutTall
	// LayoutGrid always tiles a near-square grid.
	LayoutGrid
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutMasterStack:
		return "master-stack"
	case LayoutWide:
		return "wide"
	case LayoutTall:
		return "tall"
	case LayoutGrid:
		return "grid"
	default:
		return "auto"
	}
}

// ParseLayoutMode maps a persisted mode name back to a LayoutMode. Unknown
// names fall back to Auto so stale documents stay loadable.
func ParseLayoutMode(name string) LayoutMode {
	switch name {
	case "master-stack":
		return LayoutMasterStack
	case "wide":
		return LayoutWide
	case "tall":
		return LayoutTall
	case "grid":
		return LayoutGrid
	default:
		return LayoutAuto
	}
}

// LayoutEngine computes non-overlapping regions for an ordered pane list.
// Compute is a pure function; the engine only carries tuning knobs.
type LayoutEngine struct {
	// MasterRatio is the horizontal share given to the master pane in
	// master-based arrangements.
	MasterRatio float64
}

// NewLayoutEngine returns an engine with the default master ratio.
func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{MasterRatio: 0.6}
}

// Compute assigns one region per pane id, in list order. The union of the
// returned regions covers bounds exactly and no two regions overlap, except
// where minimum-size clamping forces an overflow.
func (e *LayoutEngine) Compute(order []PaneID, bounds Rect, mode LayoutMode) map[PaneID]Rect {
	regions := make(map[PaneID]Rect, len(order))
	n := len(order)
	if n == 0 {
		return regions
	}

	var rects []Rect
	switch mode {
	case LayoutMasterStack:
		rects = e.masterStack(n, bounds)
	case LayoutWide:
		rects = e.wide(n, bounds)
	case LayoutTall:
		rects = splitRows(bounds, n)
	case LayoutGrid:
		rects = gridRects(n, bounds, gridColumns(n))
	default: // LayoutAuto
		rects = e.auto(n, bounds)
	}

	for i, id := range order {
		regions[id] = clampMin(rects[i])
	}
	return regions
}

func (e *LayoutEngine) auto(n int, bounds Rect) []Rect {
	switch n {
	case 1:
		return []Rect{bounds}
	case 2:
		return splitColumns(bounds, 2)
	case 3:
		return e.masterStack(3, bounds)
	case 4:
		return gridRects(4, bounds, 2)
	default:
		return gridRects(n, bounds, gridColumns(n))
	}
}

func (e *LayoutEngine) masterStack(n int, bounds Rect) []Rect {
	if n == 1 {
		return []Rect{bounds}
	}
	masterW := int(float64(bounds.W) * e.MasterRatio)
	master := Rect{X: bounds.X, Y: bounds.Y, W: masterW, H: bounds.H}
	stack := Rect{X: bounds.X + masterW, Y: bounds.Y, W: bounds.W - masterW, H: bounds.H}
	return append([]Rect{master}, splitRows(stack, n-1)...)
}

func (e *LayoutEngine) wide(n int, bounds Rect) []Rect {
	if n == 1 {
		return []Rect{bounds}
	}
	masterH := bounds.H / 2
	master := Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: masterH}
	row := Rect{X: bounds.X, Y: bounds.Y + masterH, W: bounds.W, H: bounds.H - masterH}
	return append([]Rect{master}, splitColumns(row, n-1)...)
}

// gridColumns returns ceil(sqrt(n)).
func gridColumns(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// gridRects tiles n panes row-major into the given column count. Panes in a
// short trailing row widen to fill it, so the union always covers bounds.
func gridRects(n int, bounds Rect, cols int) []Rect {
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	rowRects := splitRows(bounds, rows)
	rects := make([]Rect, 0, n)
	remaining := n
	for _, rowRect := range rowRects {
		k := cols
		if remaining < k {
			k = remaining
		}
		rects = append(rects, splitColumns(rowRect, k)...)
		remaining -= k
	}
	return rects
}

// splitColumns divides bounds into k columns; the last column absorbs the
// integer remainder so the pieces tile exactly.
func splitColumns(bounds Rect, k int) []Rect {
	rects := make([]Rect, k)
	x := bounds.X
	for i := 0; i < k; i++ {
		w := bounds.W / k
		if i == k-1 {
			w = bounds.X + bounds.W - x
		}
		rects[i] = Rect{X: x, Y: bounds.Y, W: w, H: bounds.H}
		x += w
	}
	return rects
}

// splitRows divides bounds into k rows; the last row absorbs the remainder.
func splitRows(bounds Rect, k int) []Rect {
	rects := make([]Rect, k)
	y := bounds.Y
	for i := 0; i < k; i++ {
		h := bounds.H / k
		if i == k-1 {
			h = bounds.Y + bounds.H - y
		}
		rects[i] = Rect{X: bounds.X, Y: y, W: bounds.W, H: h}
		y += h
	}
	return rects
}

func clampMin(r Rect) Rect {
	if r.W < MinPaneWidth {
		r.W = MinPaneWidth
	}
	if r.H < MinPaneHeight {
		r.H = MinPaneHeight
	}
	return r
}
