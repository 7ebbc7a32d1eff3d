// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a chi router with all endpoints:

	h := router.NewRouter(db, cfg)

Every request passes through request IDs, access logging, panic recovery,
CORS and token authentication. A missing or invalid bearer token leaves the
request anonymous; routes that need a user add RequireRole(ROLE_USER).

# Endpoints

Health:

	GET /health
	GET /

Auth:

	POST /api/auth/signup - Register
	POST /api/auth/signin - Issue access token

Users:

	GET /api/user/me                        - Current user (token required)
	GET /api/user/checkUsernameAvailability - ?username=
	GET /api/user/checkEmailAvailability    - ?email=
	GET /api/users/{username}               - Profile
	GET /api/users/{username}/polls         - Polls created by user
	GET /api/users/{username}/votes         - Polls voted on by user

Polls:

	GET  /api/polls                  - Paged listing
	POST /api/polls                  - Create poll (token required)
	GET  /api/polls/{pollId}         - Single poll
	POST /api/polls/{pollId}/votes   - Cast vote (token required)
*/
package router
