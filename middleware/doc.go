// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging is chi-compatible and logs one line per request:

	r.Use(chimw.RequestID)
	r.Use(middleware.WithLogging(log))

Each line carries method, path, remote, request_id, status, bytes and
duration_ms.

# Authentication

Authenticate reads an optional "Authorization: Bearer <token>" header and
stores the caller in the request context. Invalid tokens are treated as
anonymous; endpoints that need a caller add RequireRole:

	r.Use(middleware.Authenticate(issuer))
	r.With(middleware.RequireRole(models.RoleUser)).Post("/polls", h.CreatePoll)

RequireRole answers 401 for anonymous callers and 403 when the role is
missing. Handlers read the caller with PrincipalFrom(r.Context()).

# Validation

Validator wraps go-playground/validator with English messages:

	var req models.PollRequest
	if err := v.DecodeAndValidate(r, &req); err != nil {
		middleware.BadRequestResponse(w, err)
		return
	}

Failed fields are reported in the details array of the error body, named
by their JSON keys.

# CORS Middleware

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "poll not found")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
