// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// TokenGenerator issues access tokens for authenticated users
type TokenGenerator interface {
	Generate(user models.User) (string, error)
}

// UserService handles registration, sign-in and user lookups
type UserService struct {
	users  UserStore
	polls  PollStore
	votes  VoteStore
	tokens TokenGenerator
	now    func() time.Time
}

func NewUserService(users UserStore, polls PollStore, votes VoteStore, tokens TokenGenerator) *UserService {
	return &UserService{
		users:  users,
		polls:  polls,
		votes:  votes,
		tokens: tokens,
		now:    time.Now,
	}
}

// SignUp registers a user with ROLE_USER
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           auth.GenerateID(),
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
		Roles:        []string{models.RoleUser},
	}

	err = s.users.Create(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent sign-up
		taken, err := s.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		return models.User{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// SignIn checks the credentials and returns a bearer token
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.JwtAuthenticationResponse, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		return models.JwtAuthenticationResponse{}, ErrBadCredentials
	}
	if err != nil {
		return models.JwtAuthenticationResponse{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return models.JwtAuthenticationResponse{}, ErrBadCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return models.JwtAuthenticationResponse{}, err
	}

	return models.JwtAuthenticationResponse{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	}, nil
}

// CurrentUser summarizes the authenticated caller
func (s *UserService) CurrentUser(requester *models.UserPrincipal) (models.UserSummary, error) {
	if requester == nil {
		return models.UserSummary{}, fmt.Errorf("%w: no authenticated user", ErrInvalidRequest)
	}
	return models.UserSummary{
		ID:       requester.ID,
		Username: requester.Username,
		Name:     requester.Name,
	}, nil
}

func (s *UserService) CheckUsernameAvailability(ctx context.Context, username string) (models.UserIdentityAvailability, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return models.UserIdentityAvailability{}, err
	}
	return models.UserIdentityAvailability{Available: !taken}, nil
}

func (s *UserService) CheckEmailAvailability(ctx context.Context, email string) (models.UserIdentityAvailability, error) {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.UserIdentityAvailability{}, err
	}
	return models.UserIdentityAvailability{Available: !taken}, nil
}

// Profile returns the public profile with poll and vote totals
func (s *UserService) Profile(ctx context.Context, username string) (models.UserProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.UserProfile{}, notFound(err, "User", "username", username)
	}

	pollCount, err := s.polls.CountByCreatedBy(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, err
	}

	voteCount, err := s.votes.CountByUserID(ctx, user.ID)
	if err != nil {
		return models.UserProfile{}, err
	}

	return models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		JoinedAt:  user.CreatedAt,
		PollCount: pollCount,
		VoteCount: voteCount,
	}, nil
}
