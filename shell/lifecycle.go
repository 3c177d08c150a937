// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/lifecycle.go
// Summary: App run-loop management for panes hosted by the shell.

package shell

import (
	"log"
	"sync"
)

// LocalAppLifecycle runs apps in-process. It spawns each app's Run loop in a
// goroutine and delegates Stop calls directly.
type LocalAppLifecycle struct {
	wg sync.WaitGroup
}

// StartApp launches the app's Run method asynchronously.
func (l *LocalAppLifecycle) StartApp(app App) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := app.Run(); err != nil {
			log.Printf("lifecycle: app '%s' exited with error: %v", app.GetTitle(), err)
		}
	}()
}

// StopApp forwards the stop request to the app implementation.
func (l *LocalAppLifecycle) StopApp(app App) {
	app.Stop()
}

// Wait blocks until all started apps have exited. Primarily useful for tests
// and shutdown.
func (l *LocalAppLifecycle) Wait() {
	l.wg.Wait()
}

// NoopAppLifecycle is a helper used in tests where the app run loop is
// stubbed out and should not be invoked.
type NoopAppLifecycle struct{}

func (NoopAppLifecycle) StartApp(app App) {}
func (NoopAppLifecycle) StopApp(app App)  {}
