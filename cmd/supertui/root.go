// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/supertui/root.go
// Summary: Command-line entry wiring config, store, registry and the engine.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tteejj/supertui-sub003/config"
	"github.com/tteejj/supertui-sub003/registry"
	"github.com/tteejj/supertui-sub003/shell"
	"github.com/tteejj/supertui-sub003/store"
)

var version = "dev"

type rootFlags struct {
	configPath  string
	stateDir    string
	fromScratch bool
	contextName string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "supertui",
		Short:        "Keyboard-driven tiling pane manager for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: user config dir)")
	cmd.Flags().StringVar(&flags.stateDir, "state-dir", "", "override workspace state directory")
	cmd.Flags().BoolVar(&flags.fromScratch, "from-scratch", false, "ignore saved workspace state")
	cmd.Flags().StringVar(&flags.contextName, "context", "", "named context to tag the initial workspace with")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the supertui version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("supertui %s\n", version)
		},
	}
}

func runShell(flags *rootFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("supertui must run on a terminal")
	}

	var cfg config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// A broken config file falls back to defaults but is worth seeing.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if flags.stateDir != "" {
		cfg.StateDir = flags.stateDir
	}

	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Printf("supertui %s starting", version)

	st, err := store.NewStore(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}

	catalog, err := store.OpenContextCatalog(filepath.Join(cfg.StateDir, "contexts.db"))
	if err != nil {
		// Contexts are an optional tagging layer; continue without them.
		log.Printf("Context catalog unavailable: %v", err)
		catalog = nil
	} else {
		defer catalog.Close()
	}

	reg := registry.New()
	registry.RegisterBuiltIns(reg, cfg.ShellCommand)

	lifecycle := &shell.LocalAppLifecycle{}
	bus := shell.NewDispatcher()
	manager := shell.NewPaneManager(lifecycle, bus)
	manager.SetLayoutMode(shell.ParseLayoutMode(cfg.DefaultLayout))

	coordinator := shell.NewCoordinator(manager, st, reg, bus, cfg.Workspaces)
	if catalog != nil {
		coordinator.SetContextCatalog(catalog)
		if flags.contextName != "" {
			ctx, err := catalog.Ensure(flags.contextName)
			if err != nil {
				log.Printf("Context %q: %v", flags.contextName, err)
			} else {
				coordinator.SetContextID(ctx.ID)
			}
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	driver := shell.NewTcellScreenDriver(screen)

	engine, err := shell.NewEngine(driver, manager, coordinator, reg, bus)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	engine.DefaultPaneType = "shell"
	engine.FallbackPaneType = "welcome"

	if !flags.fromScratch {
		coordinator.RestoreInitial()
	}

	runErr := engine.Run()
	driver.Fini()

	if err := coordinator.SaveCurrent(); err != nil {
		log.Printf("Final save failed: %v", err)
	}
	manager.CloseAll()
	lifecycle.Wait()

	log.Printf("supertui exiting")
	return runErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
