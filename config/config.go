// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Typed configuration for supertui, stored as JSON under the user
// config directory.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const configName = "supertui.json"

// Config holds the user-tunable settings. Zero values are filled in by
// applyDefaults so a partial file is always usable.
type Config struct {
	// Workspaces is the number of workspaces the coordinator manages.
	Workspaces int `json:"workspaces"`
	// DefaultLayout names the layout mode new workspaces start in.
	DefaultLayout string `json:"defaultLayout"`
	// ShellCommand is the program launched by terminal panes. Empty means
	// $SHELL, falling back to /bin/sh.
	ShellCommand string `json:"shellCommand"`
	// StateDir overrides where workspace snapshots are written.
	StateDir string `json:"stateDir,omitempty"`
	// LogFile overrides where the session log is written.
	LogFile string `json:"logFile,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Workspaces <= 0 {
		cfg.Workspaces = 9
	}
	if cfg.DefaultLayout == "" {
		cfg.DefaultLayout = "auto"
	}
	if cfg.ShellCommand == "" {
		cfg.ShellCommand = os.Getenv("SHELL")
	}
	if cfg.ShellCommand == "" {
		cfg.ShellCommand = "/bin/sh"
	}
	if cfg.StateDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.StateDir = filepath.Join(home, ".supertui", "state")
		} else {
			cfg.StateDir = filepath.Join(".supertui", "state")
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.StateDir), "supertui.log")
	}
}

// Path returns the location of the config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "supertui", configName), nil
}

// Load reads the config file. A missing file is not an error; defaults are
// returned and the first Save will create it.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), fmt.Errorf("resolve config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	log.Printf("Config: loaded %s", path)
	return cfg, nil
}

// Save writes the config to its default location.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as indented JSON, creating parent directories.
func (c Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
