// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store runs the SQL behind polls, votes, and users.

Each store wraps a *sqlx.DB and is safe for concurrent use. Queries are
written with ? placeholders and rebound for the active driver, and set
lookups expand with sqlx.In so a page of polls costs one query per
concern rather than one per poll.

# Stores

  - VoteStore: vote counts per choice, a user's votes, atomic insert
  - PollStore: create with choices, lookup by id, paged listings
  - UserStore: lookups, existence checks, create with roles

# Errors

Missing rows yield ErrNotFound. UserStore.Create yields ErrDuplicate when
the username or email is taken. VoteStore.Insert reports a repeat vote as
the AlreadyExists outcome rather than an error:

	outcome, err := votes.Insert(ctx, vote)
	if err != nil {
		return err
	}
	if outcome == store.AlreadyExists {
		// the user already voted in this poll
	}
*/
package store
