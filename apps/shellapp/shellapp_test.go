// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shellapp/shellapp_test.go

package shellapp

import (
	"encoding/json"
	"testing"
)

func feed(a *shellApp, s string) {
	for _, r := range s {
		a.consume(r)
	}
}

func renderedLine(a *shellApp, row int) string {
	buf := a.Render()
	line := make([]rune, 0, len(buf[row]))
	for _, c := range buf[row] {
		line = append(line, c.Ch)
	}
	out := string(line)
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return out
}

func TestConsumeBuildsLines(t *testing.T) {
	a := New("/bin/sh").(*shellApp)
	a.Resize(40, 3)

	feed(a, "hello\nworld\n")

	if got := renderedLine(a, 0); got != "hello" {
		t.Fatalf("line 0 = %q", got)
	}
	if got := renderedLine(a, 1); got != "world" {
		t.Fatalf("line 1 = %q", got)
	}
}

func TestCarriageReturnOverwrites(t *testing.T) {
	a := New("/bin/sh").(*shellApp)
	a.Resize(40, 2)

	feed(a, "progress 10%\rprogress 99%")

	if got := renderedLine(a, 0); got != "progress 99%" {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeSequencesStripped(t *testing.T) {
	a := New("/bin/sh").(*shellApp)
	a.Resize(40, 2)

	feed(a, "\x1b[31mred\x1b[0m text")
	if got := renderedLine(a, 0); got != "red text" {
		t.Fatalf("CSI not stripped: %q", got)
	}

	a2 := New("/bin/sh").(*shellApp)
	a2.Resize(40, 2)
	feed(a2, "\x1b]0;window title\aprompt$")
	if got := renderedLine(a2, 0); got != "prompt$" {
		t.Fatalf("OSC not stripped: %q", got)
	}
}

func TestScrollbackShowsTail(t *testing.T) {
	a := New("/bin/sh").(*shellApp)
	a.Resize(40, 2)

	feed(a, "one\ntwo\nthree\nfour")

	if got := renderedLine(a, 0); got != "three" {
		t.Fatalf("expected tail of scrollback, got %q", got)
	}
	if got := renderedLine(a, 1); got != "four" {
		t.Fatalf("expected last line, got %q", got)
	}
}

func TestStateRoundTripRestoresCommand(t *testing.T) {
	a := New("/usr/bin/fish").(*shellApp)
	blob := a.SaveState()
	if blob == nil {
		t.Fatalf("SaveState returned nothing")
	}

	b := New("/bin/sh").(*shellApp)
	if err := b.RestoreState(blob); err != nil {
		t.Fatalf("RestoreState: %v", err)
	}
	if b.command != "/usr/bin/fish" {
		t.Fatalf("command not restored, got %q", b.command)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	a := New("/bin/sh").(*shellApp)
	if err := a.RestoreState(json.RawMessage(`{broken`)); err == nil {
		t.Fatalf("garbage blob should error")
	}
}
