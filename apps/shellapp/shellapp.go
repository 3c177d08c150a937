// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shellapp/shellapp.go
// Summary: pty-backed terminal pane. Keeps a line-oriented scrollback rather
// than a full screen emulation; escape sequences are stripped on input.

package shellapp

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/tteejj/supertui-sub003/shell"
)

const maxScrollback = 1000

type shellApp struct {
	title   string
	command string

	width, height int
	cmd           *exec.Cmd
	pty           *os.File
	lines         [][]rune
	cursorCol     int
	esc           escState

	mu          sync.Mutex
	stop        chan struct{}
	stopOnce    sync.Once
	refreshChan chan<- bool
	buf         [][]shell.Cell
}

// escState tracks a partially consumed escape sequence across reads.
type escState int

const (
	escNone escState = iota
	escSeen
	escCSI
	escOSC
)

// New returns a terminal app running the given command.
func New(command string) shell.App {
	if command == "" {
		command = "/bin/sh"
	}
	return &shellApp{
		title:   command,
		command: command,
		width:   80,
		height:  24,
		stop:    make(chan struct{}),
		lines:   [][]rune{nil},
	}
}

func (a *shellApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

func (a *shellApp) notify() {
	if a.refreshChan != nil {
		select {
		case a.refreshChan <- true:
		default:
		}
	}
}

func (a *shellApp) Run() error {
	a.mu.Lock()
	cols := a.width
	rows := a.height
	a.mu.Unlock()

	cmd := exec.Command(a.command)
	cmd.Env = append(os.Environ(),
		"TERM=dumb",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		log.Printf("ShellApp: failed to start pty: %v", err)
		return err
	}
	a.mu.Lock()
	a.pty = ptmx
	a.cmd = cmd
	a.mu.Unlock()

	go func() {
		defer ptmx.Close()

		reader := bufio.NewReader(ptmx)
		for {
			select {
			case <-a.stop:
				return
			default:
			}

			r, _, err := reader.ReadRune()
			if err != nil {
				if err != io.EOF {
					log.Printf("ShellApp: pty read: %v", err)
				}
				return
			}

			a.mu.Lock()
			a.consume(r)
			a.mu.Unlock()
			a.notify()
		}
	}()

	return cmd.Wait()
}

// consume feeds one rune into the scrollback. Escape sequences are dropped;
// only the control characters a line display can honor are interpreted.
func (a *shellApp) consume(r rune) {
	switch a.esc {
	case escSeen:
		switch r {
		case '[':
			a.esc = escCSI
		case ']':
			a.esc = escOSC
		default:
			a.esc = escNone
		}
		return
	case escCSI:
		// Final bytes of a CSI sequence are in @-~.
		if r >= '@' && r <= '~' {
			a.esc = escNone
		}
		return
	case escOSC:
		if r == '\a' || r == '\x1b' {
			a.esc = escNone
		}
		return
	}

	switch r {
	case '\x1b':
		a.esc = escSeen
	case '\n':
		a.lines = append(a.lines, nil)
		a.cursorCol = 0
		if len(a.lines) > maxScrollback {
			a.lines = a.lines[len(a.lines)-maxScrollback:]
		}
	case '\r':
		a.cursorCol = 0
	case '\b':
		if a.cursorCol > 0 {
			a.cursorCol--
		}
	case '\a':
		// Bell, ignored.
	default:
		last := len(a.lines) - 1
		line := a.lines[last]
		for len(line) <= a.cursorCol {
			line = append(line, ' ')
		}
		line[a.cursorCol] = r
		a.lines[last] = line
		a.cursorCol++
	}
}

func (a *shellApp) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	ptmx := a.pty
	a.mu.Unlock()
	if ptmx == nil {
		return
	}

	var keyBytes []byte
	switch ev.Key() {
	case tcell.KeyUp:
		keyBytes = []byte("\x1b[A")
	case tcell.KeyDown:
		keyBytes = []byte("\x1b[B")
	case tcell.KeyRight:
		keyBytes = []byte("\x1b[C")
	case tcell.KeyLeft:
		keyBytes = []byte("\x1b[D")
	case tcell.KeyHome:
		keyBytes = []byte("\x1b[H")
	case tcell.KeyEnd:
		keyBytes = []byte("\x1b[F")
	case tcell.KeyDelete:
		keyBytes = []byte("\x1b[3~")
	case tcell.KeyEnter:
		keyBytes = []byte("\r")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		keyBytes = []byte{'\b'}
	case tcell.KeyTab:
		keyBytes = []byte("\t")
	case tcell.KeyEsc:
		keyBytes = []byte("\x1b")
	default:
		keyBytes = []byte(string(ev.Rune()))
	}

	if keyBytes != nil {
		ptmx.Write(keyBytes)
	}
}

func (a *shellApp) Render() [][]shell.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]shell.Cell{}
	}

	if len(a.buf) != a.height || (a.height > 0 && len(a.buf[0]) != a.width) {
		a.buf = make([][]shell.Cell, a.height)
		for y := range a.buf {
			a.buf[y] = make([]shell.Cell, a.width)
		}
	}

	start := 0
	if len(a.lines) > a.height {
		start = len(a.lines) - a.height
	}

	for y := 0; y < a.height; y++ {
		line := []rune(nil)
		if start+y < len(a.lines) {
			line = a.lines[start+y]
		}
		for x := 0; x < a.width; x++ {
			ch := ' '
			if x < len(line) {
				ch = line[x]
			}
			a.buf[y][x] = shell.Cell{Ch: ch, Style: tcell.StyleDefault}
		}
	}
	return a.buf
}

func (a *shellApp) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.width = cols
	a.height = rows

	if a.pty != nil {
		pty.Setsize(a.pty, &pty.Winsize{
			Rows: uint16(rows),
			Cols: uint16(cols),
		})
	}
}

func (a *shellApp) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pty != nil {
		a.pty.Close()
	}
	if a.cmd != nil && a.cmd.Process != nil {
		a.cmd.Process.Signal(syscall.SIGTERM)
	}
}

func (a *shellApp) GetTitle() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.title
}

type savedState struct {
	Command string `json:"command"`
}

// SaveState records the launch command so a restored pane re-runs it.
func (a *shellApp) SaveState() json.RawMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := json.Marshal(savedState{Command: a.command})
	if err != nil {
		return nil
	}
	return data
}

// RestoreState replaces the launch command before Run is called.
func (a *shellApp) RestoreState(blob json.RawMessage) error {
	var st savedState
	if err := json.Unmarshal(blob, &st); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if st.Command != "" {
		a.command = st.Command
		a.title = st.Command
	}
	return nil
}
