// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/render.go
// Summary: Draws pane borders, titles and app buffers onto the screen driver.

package shell

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	inactiveBorderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	activeBorderStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// drawPane renders one pane into the driver: border, truncated title and the
// hosted app's buffer clipped to the drawable area.
func drawPane(d ScreenDriver, p *Pane, screenW, screenH int) {
	r := p.Region()
	if r.W < 2 || r.H < 2 {
		return
	}

	style := inactiveBorderStyle
	if p.Focused() {
		style = activeBorderStyle
	}

	setClipped := func(x, y int, ch rune, s tcell.Style) {
		if x < 0 || y < 0 || x >= screenW || y >= screenH {
			return
		}
		d.SetContent(x, y, ch, nil, s)
	}

	for x := r.X; x < r.Right(); x++ {
		setClipped(x, r.Y, tcell.RuneHLine, style)
		setClipped(x, r.Bottom()-1, tcell.RuneHLine, style)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		setClipped(r.X, y, tcell.RuneVLine, style)
		setClipped(r.Right()-1, y, tcell.RuneVLine, style)
	}
	setClipped(r.X, r.Y, tcell.RuneULCorner, style)
	setClipped(r.Right()-1, r.Y, tcell.RuneURCorner, style)
	setClipped(r.X, r.Bottom()-1, tcell.RuneLLCorner, style)
	setClipped(r.Right()-1, r.Bottom()-1, tcell.RuneLRCorner, style)

	drawTitle(setClipped, p, r, style)

	if p.App() == nil {
		return
	}
	buf := p.App().Render()
	for y, row := range buf {
		if y >= r.H-2 {
			break
		}
		for x, cell := range row {
			if x >= r.W-2 {
				break
			}
			setClipped(r.X+1+x, r.Y+1+y, cell.Ch, cell.Style)
		}
	}
}

func drawTitle(set func(int, int, rune, tcell.Style), p *Pane, r Rect, style tcell.Style) {
	title := p.Title()
	if title == "" || r.W <= 4 {
		return
	}
	maxW := r.W - 4
	if runewidth.StringWidth(title) > maxW {
		title = runewidth.Truncate(title, maxW, "…")
	}
	x := r.X + 1
	for _, ch := range " " + title + " " {
		w := runewidth.RuneWidth(ch)
		if x+w > r.Right()-1 {
			break
		}
		set(x, r.Y, ch, style)
		x += w
	}
}
