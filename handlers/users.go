// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/service"
	"github.com/danielhkuo/quickly-vote/store"
)

type UserHandler struct {
	users *service.UserService
	polls *service.PollService
}

func NewUserHandler(db *sqlx.DB, cfg cliparse.Config) *UserHandler {
	users := store.NewUserStore(db)
	polls := store.NewPollStore(db)
	votes := store.NewVoteStore(db)

	return &UserHandler{
		users: service.NewUserService(users, polls, votes, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration)),
		polls: service.NewPollService(polls, votes, users, cfg.MaxPageSize),
	}
}

// GetCurrentUser handles GET /api/user/me
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	summary, err := h.users.CurrentUser(middleware.PrincipalFrom(r.Context()))
	if err != nil {
		serviceError(w, err, "Failed to load current user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// CheckUsernameAvailability handles GET /api/user/checkUsernameAvailability
func (h *UserHandler) CheckUsernameAvailability(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	resp, err := h.users.CheckUsernameAvailability(r.Context(), username)
	if err != nil {
		serviceError(w, err, "Failed to check username")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CheckEmailAvailability handles GET /api/user/checkEmailAvailability
func (h *UserHandler) CheckEmailAvailability(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	resp, err := h.users.CheckEmailAvailability(r.Context(), email)
	if err != nil {
		serviceError(w, err, "Failed to check email")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetUserProfile handles GET /api/users/{username}
func (h *UserHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		serviceError(w, err, "Failed to load profile")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// GetPollsCreatedBy handles GET /api/users/{username}/polls
func (h *UserHandler) GetPollsCreatedBy(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.polls.GetPollsCreatedBy(r.Context(), chi.URLParam(r, "username"), middleware.PrincipalFrom(r.Context()), page, size)
	if err != nil {
		serviceError(w, err, "Failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPollsVotedBy handles GET /api/users/{username}/votes
func (h *UserHandler) GetPollsVotedBy(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.polls.GetPollsVotedBy(r.Context(), chi.URLParam(r, "username"), middleware.PrincipalFrom(r.Context()), page, size)
	if err != nil {
		serviceError(w, err, "Failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
