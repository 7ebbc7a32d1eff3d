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

type PollStore struct {
	db *sqlx.DB
}

func NewPollStore(db *sqlx.DB) *PollStore {
	return &PollStore{db: db}
}

// Create inserts the poll and its choices in one transaction.
func (s *PollStore) Create(ctx context.Context, poll models.Poll) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO polls (id, question, expiration_date_time, created_by, updated_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), poll.ID, poll.Question, poll.ExpirationDateTime, poll.CreatedBy, poll.UpdatedBy, poll.CreatedAt, poll.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for _, c := range poll.Choices {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO choices (id, poll_id, text, position)
			VALUES (?, ?, ?, ?)
		`), c.ID, poll.ID, c.Text, c.Position)
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll: %w", err)
	}
	return nil
}

// FindByID returns ErrNotFound when no poll has the id.
func (s *PollStore) FindByID(ctx context.Context, pollID string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.GetContext(ctx, &poll, s.db.Rebind(`
		SELECT id, question, expiration_date_time, created_by, updated_by, created_at, updated_at
		FROM polls
		WHERE id = ?
	`), pollID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	polls := []models.Poll{poll}
	if err := s.loadChoices(ctx, polls); err != nil {
		return models.Poll{}, err
	}
	return polls[0], nil
}

// FindAll pages through all polls, newest first.
func (s *PollStore) FindAll(ctx context.Context, page, size int) ([]models.Poll, int64, error) {
	var total int64
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(id) FROM polls`); err != nil {
		return nil, 0, fmt.Errorf("failed to count polls: %w", err)
	}

	var polls []models.Poll
	err := s.db.SelectContext(ctx, &polls, s.db.Rebind(`
		SELECT id, question, expiration_date_time, created_by, updated_by, created_at, updated_at
		FROM polls
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query polls: %w", err)
	}

	if err := s.loadChoices(ctx, polls); err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

// FindByCreatedBy pages through one user's polls, newest first.
func (s *PollStore) FindByCreatedBy(ctx context.Context, userID string, page, size int) ([]models.Poll, int64, error) {
	total, err := s.CountByCreatedBy(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var polls []models.Poll
	err = s.db.SelectContext(ctx, &polls, s.db.Rebind(`
		SELECT id, question, expiration_date_time, created_by, updated_by, created_at, updated_at
		FROM polls
		WHERE created_by = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), userID, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query polls by creator: %w", err)
	}

	if err := s.loadChoices(ctx, polls); err != nil {
		return nil, 0, err
	}
	return polls, total, nil
}

// FindByIDs returns the polls with the given ids in no particular order.
func (s *PollStore) FindByIDs(ctx context.Context, pollIDs []string) ([]models.Poll, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, question, expiration_date_time, created_by, updated_by, created_at, updated_at
		FROM polls
		WHERE id IN (?)
	`, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll query: %w", err)
	}

	var polls []models.Poll
	if err := s.db.SelectContext(ctx, &polls, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query polls by id: %w", err)
	}

	if err := s.loadChoices(ctx, polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (s *PollStore) CountByCreatedBy(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, s.db.Rebind(`
		SELECT COUNT(id) FROM polls WHERE created_by = ?
	`), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count polls by creator: %w", err)
	}
	return count, nil
}

// loadChoices fills in the choices of every poll with one query.
func (s *PollStore) loadChoices(ctx context.Context, polls []models.Poll) error {
	if len(polls) == 0 {
		return nil
	}

	ids := make([]string, len(polls))
	for i, p := range polls {
		ids[i] = p.ID
	}

	query, args, err := sqlx.In(`
		SELECT id, poll_id, text, position
		FROM choices
		WHERE poll_id IN (?)
		ORDER BY poll_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to build choice query: %w", err)
	}

	var choices []models.Choice
	if err := s.db.SelectContext(ctx, &choices, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to query choices: %w", err)
	}

	byPoll := make(map[string][]models.Choice, len(polls))
	for _, c := range choices {
		byPoll[c.PollID] = append(byPoll[c.PollID], c)
	}
	for i := range polls {
		polls[i].Choices = byPoll[polls[i].ID]
	}
	return nil
}
