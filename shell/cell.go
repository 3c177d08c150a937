// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/cell.go
// Summary: Character cell type shared by apps and the renderer.

package shell

import "github.com/gdamore/tcell/v2"

// Cell is a single character cell produced by an app's Render pass.
type Cell struct {
	Ch    rune
	Style tcell.Style
}
