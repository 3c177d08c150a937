// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Registers the built-in pane types into a registry instance.

package registry

import (
	"github.com/tteejj/supertui-sub003/apps/clock"
	"github.com/tteejj/supertui-sub003/apps/shellapp"
	"github.com/tteejj/supertui-sub003/apps/welcome"
	"github.com/tteejj/supertui-sub003/shell"
)

// RegisterBuiltIns installs the compiled-in pane types. shellCommand is the
// program launched by terminal panes, typically from config or $SHELL.
func RegisterBuiltIns(reg *Registry, shellCommand string) {
	reg.Register(Info{
		Name:        "welcome",
		DisplayName: "Welcome",
		Category:    "system",
		Hint:        shell.SizeFlex,
	}, func() shell.App {
		return welcome.New()
	})

	reg.Register(Info{
		Name:        "clock",
		DisplayName: "Clock",
		Category:    "system",
		Hint:        shell.SizeSmall,
	}, func() shell.App {
		return clock.New()
	})

	reg.Register(Info{
		Name:        "shell",
		DisplayName: "Terminal",
		Category:    "system",
		Hint:        shell.SizeFlex,
	}, func() shell.App {
		return shellapp.New(shellCommand)
	})
}
