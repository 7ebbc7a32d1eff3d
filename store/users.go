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

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, username, email, password_hash, created_at`

// Create inserts the user with its role grants. A taken username or email
// yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, user models.User) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`), user.ID, user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	for _, role := range user.Roles {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO user_roles (user_id, role_name) VALUES (?, ?)
		`), user.ID, role)
		if err != nil {
			return fmt.Errorf("failed to grant role %s: %w", role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to commit user: %w", err)
	}
	return nil
}

// FindByID returns the user with roles, or ErrNotFound.
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	return s.findOne(ctx, `WHERE id = ?`, id)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findOne(ctx, `WHERE username = ?`, username)
}

// FindByUsernameOrEmail prefers a username match when the login is one
// user's username and another user's email.
func (s *UserStore) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (models.User, error) {
	return s.findOne(ctx, `
		WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
		LIMIT 1
	`, usernameOrEmail, usernameOrEmail, usernameOrEmail)
}

// FindByIDs loads users in one query. Roles are not loaded.
func (s *UserStore) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	var users []models.User
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, `username = ?`, username)
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `email = ?`, email)
}

func (s *UserStore) exists(ctx context.Context, where string, arg any) (bool, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, s.db.Rebind(`SELECT COUNT(id) FROM users WHERE `+where), arg)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) findOne(ctx context.Context, where string, args ...any) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`SELECT `+userColumns+` FROM users `+where), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	err = s.db.SelectContext(ctx, &user.Roles, s.db.Rebind(`
		SELECT role_name FROM user_roles WHERE user_id = ? ORDER BY role_name
	`), user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query roles: %w", err)
	}
	return user, nil
}
