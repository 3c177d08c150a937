// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/geometry.go
// Summary: Grid-unit rectangle type shared by the layout engine and navigator.

package shell

// Rect is a rectangle in grid units. X/Y is the top-left corner; the region
// covers [X, X+W) by [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Right returns the first column beyond the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row beyond the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return float64(r.X) + float64(r.W)/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return float64(r.Y) + float64(r.H)/2 }

// Overlaps reports whether two rectangles share any cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Area returns the number of cells the rectangle covers.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}
