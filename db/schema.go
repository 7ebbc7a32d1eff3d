// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application and seeds the
// role table. Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	for _, role := range roles {
		_, err := db.ExecContext(ctx, db.Rebind(`
			INSERT INTO roles (name) VALUES (?)
			ON CONFLICT (name) DO NOTHING
		`), role)
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}

	return nil
}

var roles = []string{"ROLE_USER", "ROLE_ADMIN"}

// Statements are executed one at a time; the SQLite driver does not accept
// several statements in one Exec.
var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
)`,

	// Roles
	`CREATE TABLE IF NOT EXISTS roles (
    name TEXT PRIMARY KEY
)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    role_name TEXT NOT NULL REFERENCES roles(name),
    PRIMARY KEY (user_id, role_name)
)`,

	// Polls
	`CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    expiration_date_time TIMESTAMP NOT NULL,
    created_by TEXT NOT NULL,
    updated_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,

	`CREATE INDEX IF NOT EXISTS idx_polls_created_at ON polls(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_polls_created_by ON polls(created_by)`,

	// Choices
	`CREATE TABLE IF NOT EXISTS choices (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position INTEGER NOT NULL
)`,

	`CREATE INDEX IF NOT EXISTS idx_choices_poll_id ON choices(poll_id)`,

	// Votes
	`CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    choice_id TEXT NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL
)`,

	// One vote per user per poll
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_votes_user_poll ON votes(user_id, poll_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
}
