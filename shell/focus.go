// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/focus.go
// Summary: Directional focus search over the current region set.

package shell

import "math"

// Direction identifies a spatial navigation direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

// DefaultPerpendicularWeight discounts the perpendicular-axis offset when
// scoring candidates, so an aligned pane beats a slightly closer but
// misaligned one. Empirically tuned; override on the Navigator if navigation
// feels wrong for a layout.
const DefaultPerpendicularWeight = 0.5

// Navigator performs directional searches over pane regions.
type Navigator struct {
	PerpendicularWeight float64
}

// NewNavigator returns a navigator with the default perpendicular weight.
func NewNavigator() *Navigator {
	return &Navigator{PerpendicularWeight: DefaultPerpendicularWeight}
}

// FindInDirection returns the pane to focus when moving from current in the
// given direction. The function is total: for any non-empty region set it
// returns a valid pane id, wrapping around to the far edge when no pane lies
// in the requested direction, and returning current itself when it is the
// only pane.
func (nv *Navigator) FindInDirection(current PaneID, d Direction, regions map[PaneID]Rect) PaneID {
	cur, ok := regions[current]
	if !ok || len(regions) < 2 {
		return current
	}

	best := current
	bestScore := math.Inf(1)
	bestPerp := math.Inf(1)

	for id, r := range regions {
		if id == current {
			continue
		}
		gap, perp, qualifies := nv.score(cur, r, d)
		if !qualifies {
			continue
		}
		score := gap + nv.PerpendicularWeight*perp
		if score < bestScore || (score == bestScore && (perp < bestPerp || (perp == bestPerp && id < best))) {
			best = id
			bestScore = score
			bestPerp = perp
		}
	}
	if best != current {
		return best
	}

	return nv.wrapAround(current, cur, d, regions)
}

// score computes the primary-axis gap and perpendicular center offset from
// cur to the candidate, and whether the candidate lies in direction d: its
// leading edge must sit at or beyond cur's trailing edge on the primary axis.
func (nv *Navigator) score(cur, cand Rect, d Direction) (gap, perp float64, qualifies bool) {
	switch d {
	case DirRight:
		if cand.X < cur.Right() {
			return 0, 0, false
		}
		gap = float64(cand.X - cur.Right())
		perp = math.Abs(cand.CenterY() - cur.CenterY())
	case DirLeft:
		if cand.Right() > cur.X {
			return 0, 0, false
		}
		gap = float64(cur.X - cand.Right())
		perp = math.Abs(cand.CenterY() - cur.CenterY())
	case DirDown:
		if cand.Y < cur.Bottom() {
			return 0, 0, false
		}
		gap = float64(cand.Y - cur.Bottom())
		perp = math.Abs(cand.CenterX() - cur.CenterX())
	case DirUp:
		if cand.Bottom() > cur.Y {
			return 0, 0, false
		}
		gap = float64(cur.Y - cand.Bottom())
		perp = math.Abs(cand.CenterX() - cur.CenterX())
	}
	return gap, perp, true
}

// wrapAround picks the extreme pane on the opposite edge along the primary
// axis, preferring the one with minimal perpendicular offset from cur's
// center (i3-style wraparound).
func (nv *Navigator) wrapAround(current PaneID, cur Rect, d Direction, regions map[PaneID]Rect) PaneID {
	best := current
	bestEdge := 0
	bestPerp := math.Inf(1)
	first := true

	for id, r := range regions {
		if id == current {
			continue
		}
		var edge int
		var perp float64
		switch d {
		case DirRight:
			edge = r.X
			perp = math.Abs(r.CenterY() - cur.CenterY())
		case DirLeft:
			edge = -r.Right()
			perp = math.Abs(r.CenterY() - cur.CenterY())
		case DirDown:
			edge = r.Y
			perp = math.Abs(r.CenterX() - cur.CenterX())
		case DirUp:
			edge = -r.Bottom()
			perp = math.Abs(r.CenterX() - cur.CenterX())
		}
		if first || edge < bestEdge || (edge == bestEdge && (perp < bestPerp || (perp == bestPerp && id < best))) {
			best = id
			bestEdge = edge
			bestPerp = perp
			first = false
		}
	}
	return best
}
