// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

  - AuthHandler: sign-up and sign-in
  - PollHandler: poll creation, listing, lookup and voting
  - UserHandler: current user, availability checks, profiles and
    per-user poll listings

Handlers are created via constructor functions that accept *sqlx.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

Each constructor wires the stores and services it needs.

# Requests

Bodies are decoded and validated with middleware.Validator; failures answer
400 with per-field details. Path parameters come from chi.URLParam and the
caller from middleware.PrincipalFrom.

List endpoints accept ?page= (default 0) and ?size= (default 30, at most
MaxPageSize).

# Errors

Service errors map to statuses:

	ErrInvalidRequest   400
	ErrAlreadyExpired   400
	ErrBadCredentials   401
	ErrNotFound         404
	ErrDuplicateVote    409
	ErrUsernameTaken    409
	ErrEmailTaken       409
	anything else       500, logged
*/
package handlers
