// Copyright © 2025 Supertui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/contexts.go
// Summary: SQLite-backed catalog for workspace context ids.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Context is a named working context a workspace can be pinned to.
type Context struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// ContextCatalog resolves the optional context id stored with a workspace.
// Backed by a per-user SQLite database.
type ContextCatalog struct {
	db *sql.DB
}

// OpenContextCatalog opens or creates the catalog database at the given path.
func OpenContextCatalog(path string) (*ContextCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open context catalog %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS contexts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize context catalog: %w", err)
	}
	return &ContextCatalog{db: db}, nil
}

// Ensure returns the context with the given name, creating it if missing.
func (c *ContextCatalog) Ensure(name string) (Context, error) {
	if name == "" {
		return Context{}, errors.New("context name is required")
	}
	var ctx Context
	err := c.db.QueryRow(
		`SELECT id, name, created_at FROM contexts WHERE name = ?`, name,
	).Scan(&ctx.ID, &ctx.Name, &ctx.CreatedAt)
	if err == nil {
		return ctx, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Context{}, fmt.Errorf("lookup context %q: %w", name, err)
	}

	ctx = Context{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	if _, err := c.db.Exec(
		`INSERT INTO contexts (id, name, created_at) VALUES (?, ?, ?)`,
		ctx.ID, ctx.Name, ctx.CreatedAt,
	); err != nil {
		return Context{}, fmt.Errorf("create context %q: %w", name, err)
	}
	return ctx, nil
}

// Lookup resolves a context id. The second return is false when the id is
// unknown, which callers treat as a stale reference, not an error.
func (c *ContextCatalog) Lookup(id string) (Context, bool, error) {
	var ctx Context
	err := c.db.QueryRow(
		`SELECT id, name, created_at FROM contexts WHERE id = ?`, id,
	).Scan(&ctx.ID, &ctx.Name, &ctx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Context{}, false, nil
	}
	if err != nil {
		return Context{}, false, fmt.Errorf("lookup context %s: %w", id, err)
	}
	return ctx, true, nil
}

// List returns all contexts ordered by name.
func (c *ContextCatalog) List() ([]Context, error) {
	rows, err := c.db.Query(`SELECT id, name, created_at FROM contexts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer rows.Close()

	var out []Context
	for rows.Next() {
		var ctx Context
		if err := rows.Scan(&ctx.ID, &ctx.Name, &ctx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context: %w", err)
		}
		out = append(out, ctx)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (c *ContextCatalog) Close() error {
	return c.db.Close()
}
