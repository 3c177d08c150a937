// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/app.go
// Summary: Contracts between the pane shell and the apps hosted inside panes.

package shell

import (
	"encoding/json"

	"github.com/gdamore/tcell/v2"
)

// App is the contract a pane's content must satisfy. The shell never looks
// inside an app; it only sizes it, renders its buffer and routes keys to it.
type App interface {
	// Run is the app's main loop. It is started on a goroutine by the
	// lifecycle manager and must return when Stop is called.
	Run() error
	// Stop signals the Run loop to terminate.
	Stop()
	// Resize informs the app of its drawable area in cells.
	Resize(cols, rows int)
	// Render returns the app's current buffer. Rows may be shorter than the
	// drawable area; missing cells are left blank.
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	// SetRefreshNotifier hands the app a channel it may signal when its
	// content changed and a redraw is wanted.
	SetRefreshNotifier(ch chan<- bool)
}

// StateSaver is implemented by apps that want their state persisted with the
// workspace. The blob is opaque to the shell.
type StateSaver interface {
	SaveState() json.RawMessage
}

// StateRestorer is implemented by apps that can rebuild themselves from a
// previously saved blob. Called before the pane is opened.
type StateRestorer interface {
	RestoreState(blob json.RawMessage) error
}

// AppLifecycle manages app run loops. Separated from the manager so tests can
// stub it out.
type AppLifecycle interface {
	StartApp(app App)
	StopApp(app App)
}
