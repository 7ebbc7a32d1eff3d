// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with validator tags:

  - SignUpRequest: name, username, email, password
  - SignInRequest: usernameOrEmail, password
  - PollRequest: question, choices, pollLength {days, hours}
  - VoteRequest: choiceId

# Response Types

Types for JSON responses:

  - PollResponse: poll with per-choice counts, creator, own vote, total
  - PagedResponse[T]: content, page, size, totalElements, totalPages, last
  - UserSummary, UserProfile, UserIdentityAvailability
  - JwtAuthenticationResponse: accessToken, tokenType
  - ApiResponse, CreatePollResponse, ErrorResponse

# Domain Types

Rows as stored in the database:

  - User: account with roles
  - Poll: question, expiration, creator, ordered choices
  - Choice: text and position within its poll
  - Vote: one per user per poll
  - ChoiceVoteCount: aggregated count for one choice

UserPrincipal is the authenticated caller. Operations that allow anonymous
access take a nil *UserPrincipal.

# Constants

Roles:

	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
*/
package models
