// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/service"
	"github.com/danielhkuo/quickly-vote/store"
)

type AuthHandler struct {
	users    *service.UserService
	validate *middleware.Validator
}

func NewAuthHandler(db *sqlx.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{
		users: service.NewUserService(
			store.NewUserStore(db),
			store.NewPollStore(db),
			store.NewVoteStore(db),
			auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration),
		),
		validate: middleware.NewValidator(),
	}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		middleware.BadRequestResponse(w, err)
		return
	}

	user, err := h.users.SignUp(r.Context(), req)
	if err != nil {
		serviceError(w, err, "Failed to register user")
		return
	}

	w.Header().Set("Location", "/api/users/"+user.Username)
	middleware.JSONResponse(w, http.StatusCreated, models.ApiResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		middleware.BadRequestResponse(w, err)
		return
	}

	resp, err := h.users.SignIn(r.Context(), req)
	if err != nil {
		serviceError(w, err, "Failed to sign in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
