// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/models"
)

// VoteStore runs vote queries. It holds no business rules.
type VoteStore struct {
	db *sqlx.DB
}

func NewVoteStore(db *sqlx.DB) *VoteStore {
	return &VoteStore{db: db}
}

// CountByPollIDs returns vote counts per choice for every poll in pollIDs
// using a single query.
func (s *VoteStore) CountByPollIDs(ctx context.Context, pollIDs []string) ([]models.ChoiceVoteCount, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT choice_id, COUNT(id) AS vote_count
		FROM votes
		WHERE poll_id IN (?)
		GROUP BY choice_id
	`, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build vote count query: %w", err)
	}

	var counts []models.ChoiceVoteCount
	if err := s.db.SelectContext(ctx, &counts, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	return counts, nil
}

// CountByPollID returns vote counts per choice for one poll.
func (s *VoteStore) CountByPollID(ctx context.Context, pollID string) ([]models.ChoiceVoteCount, error) {
	var counts []models.ChoiceVoteCount
	err := s.db.SelectContext(ctx, &counts, s.db.Rebind(`
		SELECT choice_id, COUNT(id) AS vote_count
		FROM votes
		WHERE poll_id = ?
		GROUP BY choice_id
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes for poll %s: %w", pollID, err)
	}
	return counts, nil
}

// FindByUserAndPollIDs returns the user's votes among the given polls.
func (s *VoteStore) FindByUserAndPollIDs(ctx context.Context, userID string, pollIDs []string) ([]models.Vote, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, poll_id, choice_id, user_id, created_at
		FROM votes
		WHERE user_id = ? AND poll_id IN (?)
	`, userID, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build user vote query: %w", err)
	}

	var votes []models.Vote
	if err := s.db.SelectContext(ctx, &votes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query user votes: %w", err)
	}
	return votes, nil
}

// FindByUserAndPoll returns ErrNotFound when the user has not voted.
func (s *VoteStore) FindByUserAndPoll(ctx context.Context, userID, pollID string) (models.Vote, error) {
	var vote models.Vote
	err := s.db.GetContext(ctx, &vote, s.db.Rebind(`
		SELECT id, poll_id, choice_id, user_id, created_at
		FROM votes
		WHERE user_id = ? AND poll_id = ?
	`), userID, pollID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}
	return vote, nil
}

func (s *VoteStore) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, s.db.Rebind(`
		SELECT COUNT(id) FROM votes WHERE user_id = ?
	`), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count user votes: %w", err)
	}
	return count, nil
}

// FindVotedPollIDs pages through the polls a user voted in, most recent
// vote first, and returns the total number of such polls.
func (s *VoteStore) FindVotedPollIDs(ctx context.Context, userID string, page, size int) ([]string, int64, error) {
	total, err := s.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var pollIDs []string
	err = s.db.SelectContext(ctx, &pollIDs, s.db.Rebind(`
		SELECT poll_id
		FROM votes
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), userID, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query voted polls: %w", err)
	}
	return pollIDs, total, nil
}

// Insert stores the vote unless the user already voted in the poll. The
// check and the insert are one statement, so concurrent inserts for the
// same (user, poll) pair store exactly one row.
func (s *VoteStore) Insert(ctx context.Context, vote models.Vote) (InsertOutcome, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO votes (id, poll_id, choice_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, poll_id) DO NOTHING
	`), vote.ID, vote.PollID, vote.ChoiceID, vote.UserID, vote.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted rows: %w", err)
	}
	if n == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}
