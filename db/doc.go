// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open selects the driver by database type, postgres (lib/pq) or sqlite
(modernc.org/sqlite), and pings the server:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection so an in-memory
database survives for the life of the pool.

# Schema Creation

CreateSchema initializes all required tables and seeds the roles:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both drivers: ids are application-generated UUID
strings and timestamps are written by the application in UTC.

# Tables

  - users: accounts, unique username and email
  - roles: ROLE_USER, ROLE_ADMIN
  - user_roles: role grants
  - polls: question, expiration, audit columns
  - choices: ordered by position within a poll
  - votes: one per (user_id, poll_id)

# Relationships

	users 1──* polls (created_by)
	polls 1──* choices
	polls 1──* votes
	choices 1──* votes
	users 1──* votes
	users *──* roles (via user_roles)

# Indexes

  - polls.created_at, polls.created_by
  - choices.poll_id
  - votes.(user_id, poll_id) (unique)
  - votes.poll_id
*/
package db
