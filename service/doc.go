// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service holds the poll and user business logic.

# Poll Service

	polls := service.NewPollService(pollStore, voteStore, userStore, cfg.MaxPageSize)

Every method takes the caller explicitly; nil means anonymous.

  - CreatePoll: expiration = now + days*24h + hours*1h
  - GetAllPolls, GetPollsCreatedBy, GetPollsVotedBy: paged, newest first
  - GetPollByID: one poll with counts and the caller's choice
  - CastVote: one vote per user per poll

Listings enrich a page with exactly three batched queries (vote counts,
the caller's votes, creators) no matter how many polls it holds, and with
none at all when the page is empty.

# Votes

CastVote checks, in order: the poll exists, now is before its expiration,
the choice belongs to the poll. The insert itself decides duplicates:

	outcome, err := votes.Insert(ctx, vote) // Inserted or AlreadyExists

AlreadyExists becomes ErrDuplicateVote. There is no read-before-write, so
concurrent votes from the same user store exactly one row.

# Responses

MapPollToResponse is pure. Choices without votes report 0, totalVotes is
the sum of the choice counts, and expired is recomputed on every call.

# Errors

	ErrInvalidRequest  bad paging
	ErrNotFound        missing poll, choice in poll, or user
	ErrAlreadyExpired  vote after expiration
	ErrDuplicateVote   second vote in a poll
	ErrUsernameTaken, ErrEmailTaken, ErrBadCredentials

Errors are wrapped with fmt.Errorf("%w: ...") and matched with errors.Is.
*/
package service
