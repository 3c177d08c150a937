// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/clock.go
// Summary: Clock pane that redraws once a second.

package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tteejj/supertui-sub003/shell"
)

type clockApp struct {
	width, height int
	currentTime   string
	mu            sync.RWMutex
	stop          chan struct{}
	stopOnce      sync.Once
	refreshChan   chan<- bool
	buf           [][]shell.Cell
}

// New returns the clock app.
func New() shell.App {
	return &clockApp{
		stop: make(chan struct{}),
	}
}

func (a *clockApp) HandleKey(ev *tcell.EventKey) {}

func (a *clockApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

// Run ticks once a second until Stop.
func (a *clockApp) Run() error {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	updateTime := func() {
		a.mu.Lock()
		a.currentTime = time.Now().Format("15:04:05")
		a.mu.Unlock()
	}
	updateTime()

	for {
		select {
		case <-ticker.C:
			updateTime()
			if a.refreshChan != nil {
				// Non-blocking send
				select {
				case a.refreshChan <- true:
				default:
				}
			}
		case <-a.stop:
			return nil
		}
	}
}

func (a *clockApp) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

func (a *clockApp) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

func (a *clockApp) Render() [][]shell.Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]shell.Cell{}
	}

	if len(a.buf) != a.height || (a.height > 0 && len(a.buf[0]) != a.width) {
		a.buf = make([][]shell.Cell, a.height)
		for y := 0; y < a.height; y++ {
			a.buf[y] = make([]shell.Cell, a.width)
		}
	}

	for i := range a.buf {
		for j := range a.buf[i] {
			a.buf[i][j] = shell.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}

	style := tcell.StyleDefault.Foreground(tcell.PaletteColor(6))

	str := fmt.Sprintf("Time: %s", a.currentTime)
	y := a.height / 2
	x := (a.width - len(str)) / 2

	if y < a.height && x >= 0 {
		for i, ch := range str {
			if x+i < a.width {
				a.buf[y][x+i] = shell.Cell{Ch: ch, Style: style}
			}
		}
	}

	return a.buf
}

func (a *clockApp) GetTitle() string {
	return "Clock"
}
