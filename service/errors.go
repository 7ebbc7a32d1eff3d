// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExpired = errors.New("poll has already expired")
	ErrDuplicateVote  = errors.New("you have already cast your vote in this poll")
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrEmailTaken     = errors.New("email address already in use")
	ErrBadCredentials = errors.New("bad credentials")
)

// notFound turns a store miss into ErrNotFound naming the resource and
// passes other errors through.
func notFound(err error, resource, field, value string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s not found with %s '%s'", ErrNotFound, resource, field, value)
	}
	return err
}

// PollStore is the poll persistence the services need
type PollStore interface {
	Create(ctx context.Context, poll models.Poll) error
	FindByID(ctx context.Context, pollID string) (models.Poll, error)
	FindAll(ctx context.Context, page, size int) ([]models.Poll, int64, error)
	FindByCreatedBy(ctx context.Context, userID string, page, size int) ([]models.Poll, int64, error)
	FindByIDs(ctx context.Context, pollIDs []string) ([]models.Poll, error)
	CountByCreatedBy(ctx context.Context, userID string) (int64, error)
}

// VoteStore is the vote persistence the services need
type VoteStore interface {
	CountByPollIDs(ctx context.Context, pollIDs []string) ([]models.ChoiceVoteCount, error)
	CountByPollID(ctx context.Context, pollID string) ([]models.ChoiceVoteCount, error)
	FindByUserAndPollIDs(ctx context.Context, userID string, pollIDs []string) ([]models.Vote, error)
	FindByUserAndPoll(ctx context.Context, userID, pollID string) (models.Vote, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	FindVotedPollIDs(ctx context.Context, userID string, page, size int) ([]string, int64, error)
	Insert(ctx context.Context, vote models.Vote) (store.InsertOutcome, error)
}

// UserStore is the user persistence the services need
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
