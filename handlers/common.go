// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-vote/logger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/service"
)

// Paging defaults for list endpoints
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 30
)

// parsePaging reads ?page= and ?size=, falling back to the defaults
func parsePaging(r *http.Request) (page, size int, err error) {
	page, size = DefaultPageNumber, DefaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			return 0, 0, errors.New("page must be an integer")
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, errors.New("size must be an integer")
		}
	}
	return page, size, nil
}

// serviceError maps a service error to its HTTP status. Unexpected errors
// are logged and answered with a generic message.
func serviceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyExpired):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateVote),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBadCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error(msg, logger.Err(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, msg)
	}
}
