// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// TestJWTSecret signs tokens in handler and router tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Env:           "local",
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		JWTSecret:     TestJWTSecret,
		JWTExpiration: time.Hour,
		MaxPageSize:   50,
	}
}

// CreateTestUser inserts a user with ROLE_USER. The password is "password".
func CreateTestUser(t *testing.T, conn *sqlx.DB, username string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:           auth.GenerateID(),
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
		Roles:        []string{models.RoleUser},
	}

	_, err = conn.Exec(conn.Rebind(`
		INSERT INTO users (id, name, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), user.ID, user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	_, err = conn.Exec(conn.Rebind(`INSERT INTO user_roles (user_id, role_name) VALUES (?, ?)`), user.ID, models.RoleUser)
	if err != nil {
		t.Fatalf("Failed to grant test role: %v", err)
	}

	return user
}

// CreateTestPoll inserts a poll created at createdAt and open until
// expiresAt, with one choice per label in order.
func CreateTestPoll(t *testing.T, conn *sqlx.DB, creatorID, question string, createdAt, expiresAt time.Time, labels ...string) models.Poll {
	t.Helper()

	poll := models.Poll{
		ID:                 auth.GenerateID(),
		Question:           question,
		ExpirationDateTime: expiresAt.UTC(),
		CreatedBy:          creatorID,
		UpdatedBy:          creatorID,
		CreatedAt:          createdAt.UTC(),
		UpdatedAt:          createdAt.UTC(),
	}

	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO polls (id, question, expiration_date_time, created_by, updated_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), poll.ID, poll.Question, poll.ExpirationDateTime, poll.CreatedBy, poll.UpdatedBy, poll.CreatedAt, poll.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, label := range labels {
		choice := models.Choice{ID: auth.GenerateID(), PollID: poll.ID, Text: label, Position: i}
		_, err := conn.Exec(conn.Rebind(`
			INSERT INTO choices (id, poll_id, text, position) VALUES (?, ?, ?, ?)
		`), choice.ID, choice.PollID, choice.Text, choice.Position)
		if err != nil {
			t.Fatalf("Failed to create test choice: %v", err)
		}
		poll.Choices = append(poll.Choices, choice)
	}

	return poll
}

// CastTestVote records a vote directly, bypassing expiration checks
func CastTestVote(t *testing.T, conn *sqlx.DB, pollID, choiceID, userID string, at time.Time) models.Vote {
	t.Helper()

	vote := models.Vote{
		ID:        auth.GenerateID(),
		PollID:    pollID,
		ChoiceID:  choiceID,
		UserID:    userID,
		CreatedAt: at.UTC(),
	}

	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO votes (id, poll_id, choice_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)
	`), vote.ID, vote.PollID, vote.ChoiceID, vote.UserID, vote.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return vote
}

// CountVotes returns the number of stored votes for a poll
func CountVotes(t *testing.T, conn *sqlx.DB, pollID string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, conn.Rebind(`SELECT COUNT(*) FROM votes WHERE poll_id = ?`), pollID); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// Principal builds the authenticated caller for a user
func Principal(user models.User) *models.UserPrincipal {
	return &models.UserPrincipal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Roles:    user.Roles,
	}
}

// BearerToken issues a token for the user signed with TestJWTSecret
func BearerToken(t *testing.T, user models.User) map[string]string {
	t.Helper()

	token, err := auth.NewTokenIssuer(TestJWTSecret, time.Hour).Generate(user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": models.TokenTypeBearer + " " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
