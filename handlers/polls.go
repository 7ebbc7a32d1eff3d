// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/service"
	"github.com/danielhkuo/quickly-vote/store"
)

type PollHandler struct {
	polls    *service.PollService
	validate *middleware.Validator
}

func NewPollHandler(db *sqlx.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{
		polls: service.NewPollService(
			store.NewPollStore(db),
			store.NewVoteStore(db),
			store.NewUserStore(db),
			cfg.MaxPageSize,
		),
		validate: middleware.NewValidator(),
	}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.PollRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		middleware.BadRequestResponse(w, err)
		return
	}

	poll, err := h.polls.CreatePoll(r.Context(), middleware.PrincipalFrom(r.Context()), req)
	if err != nil {
		serviceError(w, err, "Failed to create poll")
		return
	}

	w.Header().Set("Location", "/api/polls/"+poll.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Success: true,
		Message: "Poll Created Successfully",
		ID:      poll.ID,
	})
}

// GetPolls handles GET /api/polls
func (h *PollHandler) GetPolls(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.polls.GetAllPolls(r.Context(), middleware.PrincipalFrom(r.Context()), page, size)
	if err != nil {
		serviceError(w, err, "Failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPoll handles GET /api/polls/{pollId}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollId")

	resp, err := h.polls.GetPollByID(r.Context(), pollID, middleware.PrincipalFrom(r.Context()))
	if err != nil {
		serviceError(w, err, "Failed to load poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CastVote handles POST /api/polls/{pollId}/votes
func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollId")

	var req models.VoteRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		middleware.BadRequestResponse(w, err)
		return
	}

	resp, err := h.polls.CastVote(r.Context(), pollID, req.ChoiceID, middleware.PrincipalFrom(r.Context()))
	if err != nil {
		serviceError(w, err, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
