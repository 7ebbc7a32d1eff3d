// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.WithLogging(slog.Default()))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.Authenticate(auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration)))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)

	requireUser := middleware.RequireRole(models.RoleUser)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		r.With(requireUser).Get("/user/me", userHandler.GetCurrentUser)
		r.Get("/user/checkUsernameAvailability", userHandler.CheckUsernameAvailability)
		r.Get("/user/checkEmailAvailability", userHandler.CheckEmailAvailability)

		r.Get("/users/{username}", userHandler.GetUserProfile)
		r.Get("/users/{username}/polls", userHandler.GetPollsCreatedBy)
		r.Get("/users/{username}/votes", userHandler.GetPollsVotedBy)

		r.Get("/polls", pollHandler.GetPolls)
		r.With(requireUser).Post("/polls", pollHandler.CreatePoll)
		r.Get("/polls/{pollId}", pollHandler.GetPoll)
		r.With(requireUser).Post("/polls/{pollId}/votes", pollHandler.CastVote)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return r
}
