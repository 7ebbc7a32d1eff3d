// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// PollService implements poll creation, listing and voting
type PollService struct {
	polls       PollStore
	votes       VoteStore
	users       UserStore
	maxPageSize int
	now         func() time.Time
}

func NewPollService(polls PollStore, votes VoteStore, users UserStore, maxPageSize int) *PollService {
	return &PollService{
		polls:       polls,
		votes:       votes,
		users:       users,
		maxPageSize: maxPageSize,
		now:         time.Now,
	}
}

// CreatePoll stores a new poll owned by the requester. Expiration is the
// creation time plus the requested length.
func (s *PollService) CreatePoll(ctx context.Context, requester *models.UserPrincipal, req models.PollRequest) (models.Poll, error) {
	if requester == nil {
		return models.Poll{}, fmt.Errorf("%w: poll creator is required", ErrInvalidRequest)
	}

	now := s.now().UTC()
	poll := models.Poll{
		ID:                 auth.GenerateID(),
		Question:           req.Question,
		ExpirationDateTime: now.Add(req.PollLength.Duration()),
		CreatedBy:          requester.ID,
		UpdatedBy:          requester.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for i, c := range req.Choices {
		poll.Choices = append(poll.Choices, models.Choice{
			ID:       auth.GenerateID(),
			PollID:   poll.ID,
			Text:     c.Text,
			Position: i,
		})
	}

	if err := s.polls.Create(ctx, poll); err != nil {
		return models.Poll{}, err
	}

	slog.Info("poll created",
		"poll_id", poll.ID,
		"created_by", requester.Username,
		"choices", len(poll.Choices),
		"expires", humanize.RelTime(poll.ExpirationDateTime, now, "ago", "from now"),
	)

	return poll, nil
}

// GetAllPolls lists polls newest first
func (s *PollService) GetAllPolls(ctx context.Context, requester *models.UserPrincipal, page, size int) (models.PagedResponse[models.PollResponse], error) {
	if err := s.validatePage(page, size); err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	polls, total, err := s.polls.FindAll(ctx, page, size)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	return s.page(ctx, polls, total, page, size, requester, nil)
}

// GetPollsCreatedBy lists the polls a user created, newest first
func (s *PollService) GetPollsCreatedBy(ctx context.Context, username string, requester *models.UserPrincipal, page, size int) (models.PagedResponse[models.PollResponse], error) {
	if err := s.validatePage(page, size); err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, notFound(err, "User", "username", username)
	}

	polls, total, err := s.polls.FindByCreatedBy(ctx, user.ID, page, size)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	return s.page(ctx, polls, total, page, size, requester, &user)
}

// GetPollsVotedBy lists the polls a user voted in, most recent vote first
func (s *PollService) GetPollsVotedBy(ctx context.Context, username string, requester *models.UserPrincipal, page, size int) (models.PagedResponse[models.PollResponse], error) {
	if err := s.validatePage(page, size); err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, notFound(err, "User", "username", username)
	}

	pollIDs, total, err := s.votes.FindVotedPollIDs(ctx, user.ID, page, size)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}
	if len(pollIDs) == 0 {
		return models.NewPagedResponse([]models.PollResponse{}, page, size, total), nil
	}

	found, err := s.polls.FindByIDs(ctx, pollIDs)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	// Keep the vote order
	byID := make(map[string]models.Poll, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	polls := make([]models.Poll, 0, len(pollIDs))
	for _, id := range pollIDs {
		if p, ok := byID[id]; ok {
			polls = append(polls, p)
		}
	}

	return s.page(ctx, polls, total, page, size, requester, nil)
}

// GetPollByID returns one poll with its counts and the requester's choice
func (s *PollService) GetPollByID(ctx context.Context, pollID string, requester *models.UserPrincipal) (models.PollResponse, error) {
	poll, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		return models.PollResponse{}, notFound(err, "Poll", "id", pollID)
	}

	rows, err := s.votes.CountByPollID(ctx, pollID)
	if err != nil {
		return models.PollResponse{}, err
	}

	creator, err := s.users.FindByID(ctx, poll.CreatedBy)
	if err != nil {
		return models.PollResponse{}, notFound(err, "User", "id", poll.CreatedBy)
	}

	var selected *string
	if requester != nil {
		vote, err := s.votes.FindByUserAndPoll(ctx, requester.ID, pollID)
		switch {
		case err == nil:
			selected = &vote.ChoiceID
		case !errors.Is(err, store.ErrNotFound):
			return models.PollResponse{}, err
		}
	}

	return MapPollToResponse(poll, countsByChoice(rows), creator, selected, s.now()), nil
}

// CastVote records the requester's vote. Each user votes at most once per
// poll; the storage insert decides which of several racing votes wins.
func (s *PollService) CastVote(ctx context.Context, pollID, choiceID string, requester *models.UserPrincipal) (models.PollResponse, error) {
	if requester == nil {
		return models.PollResponse{}, fmt.Errorf("%w: voter is required", ErrInvalidRequest)
	}

	poll, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		return models.PollResponse{}, notFound(err, "Poll", "id", pollID)
	}

	now := s.now()
	if !now.Before(poll.ExpirationDateTime) {
		return models.PollResponse{}, fmt.Errorf("%w: poll %s closed %s", ErrAlreadyExpired, pollID,
			humanize.RelTime(poll.ExpirationDateTime, now, "ago", "from now"))
	}

	choice, ok := poll.Choice(choiceID)
	if !ok {
		return models.PollResponse{}, fmt.Errorf("%w: Choice not found with id '%s'", ErrNotFound, choiceID)
	}

	outcome, err := s.votes.Insert(ctx, models.Vote{
		ID:        auth.GenerateID(),
		PollID:    poll.ID,
		ChoiceID:  choice.ID,
		UserID:    requester.ID,
		CreatedAt: now.UTC(),
	})
	if err != nil {
		return models.PollResponse{}, err
	}
	if outcome == store.AlreadyExists {
		slog.Info("duplicate vote rejected", "poll_id", pollID, "user_id", requester.ID)
		return models.PollResponse{}, ErrDuplicateVote
	}

	slog.Debug("vote cast", "poll_id", pollID, "choice_id", choice.ID, "user_id", requester.ID)

	rows, err := s.votes.CountByPollID(ctx, pollID)
	if err != nil {
		return models.PollResponse{}, err
	}

	creator, err := s.users.FindByID(ctx, poll.CreatedBy)
	if err != nil {
		return models.PollResponse{}, notFound(err, "User", "id", poll.CreatedBy)
	}

	return MapPollToResponse(poll, countsByChoice(rows), creator, &choice.ID, s.now()), nil
}

func (s *PollService) validatePage(page, size int) error {
	if page < 0 {
		return fmt.Errorf("%w: page number cannot be less than zero", ErrInvalidRequest)
	}
	if size < 1 {
		return fmt.Errorf("%w: page size must be at least one", ErrInvalidRequest)
	}
	if size > s.maxPageSize {
		return fmt.Errorf("%w: page size must not be greater than %d", ErrInvalidRequest, s.maxPageSize)
	}
	return nil
}

// page enriches a page of polls with three batched lookups: vote counts,
// the requester's votes and the creators. A known creator skips the last
// lookup. An empty page issues none of them.
func (s *PollService) page(ctx context.Context, polls []models.Poll, total int64, page, size int, requester *models.UserPrincipal, creator *models.User) (models.PagedResponse[models.PollResponse], error) {
	if len(polls) == 0 {
		return models.NewPagedResponse([]models.PollResponse{}, page, size, total), nil
	}

	pollIDs := make([]string, len(polls))
	for i, p := range polls {
		pollIDs[i] = p.ID
	}

	rows, err := s.votes.CountByPollIDs(ctx, pollIDs)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}
	counts := countsByChoice(rows)

	selected, err := s.requesterVotes(ctx, requester, pollIDs)
	if err != nil {
		return models.PagedResponse[models.PollResponse]{}, err
	}

	var creators map[string]models.User
	if creator == nil {
		creators, err = s.creators(ctx, polls)
		if err != nil {
			return models.PagedResponse[models.PollResponse]{}, err
		}
	}

	now := s.now()
	content := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		owner, ok := models.User{}, true
		if creator != nil {
			owner = *creator
		} else {
			owner, ok = creators[p.CreatedBy]
		}
		if !ok {
			return models.PagedResponse[models.PollResponse]{}, fmt.Errorf("%w: User not found with id '%s'", ErrNotFound, p.CreatedBy)
		}

		var choice *string
		if id, voted := selected[p.ID]; voted {
			choice = &id
		}

		content = append(content, MapPollToResponse(p, counts, owner, choice, now))
	}

	return models.NewPagedResponse(content, page, size, total), nil
}

// requesterVotes maps poll id to the requester's choice id
func (s *PollService) requesterVotes(ctx context.Context, requester *models.UserPrincipal, pollIDs []string) (map[string]string, error) {
	if requester == nil {
		return nil, nil
	}

	votes, err := s.votes.FindByUserAndPollIDs(ctx, requester.ID, pollIDs)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]string, len(votes))
	for _, v := range votes {
		selected[v.PollID] = v.ChoiceID
	}
	return selected, nil
}

func (s *PollService) creators(ctx context.Context, polls []models.Poll) (map[string]models.User, error) {
	seen := make(map[string]struct{}, len(polls))
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		if _, dup := seen[p.CreatedBy]; dup {
			continue
		}
		seen[p.CreatedBy] = struct{}{}
		ids = append(ids, p.CreatedBy)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
