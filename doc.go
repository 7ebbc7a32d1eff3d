// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote lets registered users create time-limited multiple-choice polls
and cast one vote per poll. Anyone can browse polls and live counts; signed-in
callers also see which choice they picked.

# Starting the Server

The server reads a .env file, a YAML config file or environment variables,
then applies CLI flags on top:

	DATABASE_URL=quickly-vote.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string or SQLite file
  - JWT_SECRET (--jwt-secret): Secret for signing access tokens

Optional settings:

  - CONFIG_PATH (-config): YAML config file
  - ENV (-env): local, dev or prod; selects the log format (default: local)
  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - JWT_EXPIRATION: Token lifetime (default: 168h)
  - MAX_PAGE_SIZE: Largest accepted page size (default: 50)
  - HTTP_TIMEOUT, HTTP_IDLE_TIMEOUT: Server timeouts

# Architecture

  - handlers: HTTP request handlers (auth, polls, users)
  - service: Poll and user operations, response assembly
  - store: SQL accessors for users, polls, choices and votes
  - router: Route definitions using chi
  - middleware: Logging, CORS, authentication, validation, JSON helpers
  - models: Domain, request and response types
  - auth: Password hashing, JWT issuing and id generation
  - db: Connection setup and schema creation
  - logger: slog setup and the local pretty handler
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
