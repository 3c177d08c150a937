// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/welcome/welcome.go
// Summary: Static welcome pane shown on empty workspaces.

package welcome

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/tteejj/supertui-sub003/shell"
)

const (
	heading = "Welcome to Supertui!"
	footer  = "Press 'Ctrl-Q' to quit."
)

// bindings drives the help text; the keys column is padded to line up.
var bindings = [][2]string{
	{"Alt-Enter", "open a terminal pane"},
	{"Alt-Arrow", "move focus between panes"},
	{"Alt-Shift-Arrow", "swap pane with a neighbor"},
	{"Alt-w", "close the focused pane"},
	{"Alt-1..9", "switch workspace"},
}

type welcomeApp struct {
	mu            sync.RWMutex
	width, height int
}

// New returns the welcome app.
func New() shell.App {
	return &welcomeApp{}
}

func (a *welcomeApp) Run() error {
	// Static content, no background work.
	return nil
}

func (a *welcomeApp) Stop() {}

func (a *welcomeApp) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

// Render emits a sparse buffer: only the rows carrying text are allocated,
// the rest stay blank per the App contract.
func (a *welcomeApp) Render() [][]shell.Cell {
	a.mu.RLock()
	cols, rows := a.width, a.height
	a.mu.RUnlock()

	if cols <= 0 || rows <= 0 {
		return nil
	}

	headingStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen.TrueColor()).Bold(true)
	bodyStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen.TrueColor())

	lines := make([]string, 0, len(bindings)+4)
	lines = append(lines, heading, "")
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("%-16s %s", b[0], b[1]))
	}
	lines = append(lines, "", footer)

	buffer := make([][]shell.Cell, rows)
	top := (rows - len(lines)) / 2
	for i, text := range lines {
		y := top + i
		if text == "" || y < 0 || y >= rows {
			continue
		}
		style := bodyStyle
		if i == 0 {
			style = headingStyle
		}
		buffer[y] = centeredRow(text, cols, style)
	}
	return buffer
}

// centeredRow lays the text out centered in a blank row of the given width.
func centeredRow(text string, cols int, style tcell.Style) []shell.Cell {
	row := make([]shell.Cell, cols)
	for i := range row {
		row[i] = shell.Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
	x := (cols - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x+w > cols {
			break
		}
		row[x] = shell.Cell{Ch: ch, Style: style}
		x += w
	}
	return row
}

func (a *welcomeApp) GetTitle() string {
	return "Welcome"
}

func (a *welcomeApp) HandleKey(ev *tcell.EventKey) {}

func (a *welcomeApp) SetRefreshNotifier(refreshChan chan<- bool) {}
