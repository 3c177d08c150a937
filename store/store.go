// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: Crash-safe persistence of workspace snapshots with checksum
// verification and rotating backups.

package store

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxBackups is the number of prior versions retained per workspace.
const MaxBackups = 5

// PaneEntry is one pane's persisted identity: its factory type name plus an
// opaque state blob the shell never interprets.
type PaneEntry struct {
	TypeName string          `json:"typeName"`
	State    json.RawMessage `json:"state,omitempty"`
}

// WorkspaceState is the persisted snapshot of one workspace. It is either
// fully absent (fresh workspace) or checksum-verified; a partially-applied
// state is never exposed to callers.
type WorkspaceState struct {
	Name         string      `json:"name"`
	Index        int         `json:"index"`
	Panes        []PaneEntry `json:"panes"`
	FocusedIndex int         `json:"focusedIndex"`
	LayoutMode   string      `json:"layoutMode"`
	ContextID    string      `json:"contextId,omitempty"`
	LastModified time.Time   `json:"lastModified"`
	Checksum     string      `json:"checksum"`
}

// IsEmpty reports whether the state describes a fresh workspace.
func (s WorkspaceState) IsEmpty() bool {
	return len(s.Panes) == 0 && s.Name == ""
}

// Store persists one snapshot document per workspace index, with a temp-file
// plus rename write path and up to MaxBackups rotating backups. Each index
// serializes through its own lock so a load never observes a half-written
// file.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewStore opens (creating if needed) the snapshot directory. An inaccessible
// directory is the one unrecoverable persistence condition and is returned as
// an error for startup to surface.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace state dir %s: %w", dir, err)
	}
	return &Store{dir: dir, locks: make(map[int]*sync.Mutex)}, nil
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) lockFor(index int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[index]
	if !ok {
		l = &sync.Mutex{}
		s.locks[index] = l
	}
	return l
}

func (s *Store) path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("workspace-%d.json", index))
}

func (s *Store) backupPath(index, n int) string {
	return fmt.Sprintf("%s.%d", s.path(index), n)
}

// Digest computes the content checksum of a state: SHA-1 over the document
// serialized with an empty checksum field.
func Digest(st WorkspaceState) (string, error) {
	st.Checksum = ""
	payload, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Save serializes the state, stamps it with a content digest, writes it to a
// temp file and atomically replaces the workspace's document, rotating the
// previous version into the backup chain first. The index lock is held for
// the whole sequence.
func (s *Store) Save(index int, st WorkspaceState) error {
	lock := s.lockFor(index)
	lock.Lock()
	defer lock.Unlock()

	st.Index = index
	if st.LastModified.IsZero() {
		st.LastModified = time.Now().UTC()
	}
	digest, err := Digest(st)
	if err != nil {
		return fmt.Errorf("serialize workspace %d: %w", index, err)
	}
	st.Checksum = digest

	// Compact serialization: an indented document would re-format the opaque
	// pane blobs, and those must come back byte-identical.
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("serialize workspace %d: %w", index, err)
	}

	tmp := s.path(index) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write workspace %d: %w", index, err)
	}

	s.rotateBackups(index)

	if err := os.Rename(tmp, s.path(index)); err != nil {
		return fmt.Errorf("replace workspace %d: %w", index, err)
	}
	return nil
}

// rotateBackups shifts workspace-N.json.k to .k+1 (dropping the oldest) and
// copies the current document to .1. The current file stays in place so the
// final rename is an atomic replace.
func (s *Store) rotateBackups(index int) {
	current, err := os.ReadFile(s.path(index))
	if err != nil {
		return // nothing to rotate
	}
	os.Remove(s.backupPath(index, MaxBackups))
	for n := MaxBackups - 1; n >= 1; n-- {
		os.Rename(s.backupPath(index, n), s.backupPath(index, n+1))
	}
	if err := os.WriteFile(s.backupPath(index, 1), current, 0o644); err != nil {
		log.Printf("Store: failed to write backup for workspace %d: %v", index, err)
	}
}

// Load returns the workspace's verified state, falling back through the
// backup chain on checksum mismatch. When no candidate verifies it returns
// the empty state; corruption is logged, never surfaced as an error.
func (s *Store) Load(index int) WorkspaceState {
	lock := s.lockFor(index)
	lock.Lock()
	defer lock.Unlock()

	candidates := []string{s.path(index)}
	for n := 1; n <= MaxBackups; n++ {
		candidates = append(candidates, s.backupPath(index, n))
	}

	sawCorruption := false
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var st WorkspaceState
		if err := json.Unmarshal(data, &st); err != nil {
			log.Printf("Store: workspace %d document %s unreadable: %v", index, filepath.Base(path), err)
			sawCorruption = true
			continue
		}
		want := st.Checksum
		got, err := Digest(st)
		if err != nil || want == "" || got != want {
			log.Printf("Store: workspace %d document %s failed checksum verification", index, filepath.Base(path))
			sawCorruption = true
			continue
		}
		if sawCorruption {
			log.Printf("Store: workspace %d recovered from backup %s", index, filepath.Base(path))
		}
		return st
	}

	if sawCorruption {
		log.Printf("Store: workspace %d has no valid document or backup, starting fresh", index)
	}
	return WorkspaceState{Index: index}
}
