// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/supertui/main.go
// Summary: Binary entry point.

package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
