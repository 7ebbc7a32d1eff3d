// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-vote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// 400, 401 and 404 from a handler all mean the route matched
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/api/auth/signup"},
		{"POST", "/api/auth/signin"},

		{"GET", "/api/user/me"},
		{"GET", "/api/user/checkUsernameAvailability"},
		{"GET", "/api/user/checkEmailAvailability"},

		{"GET", "/api/users/alice"},
		{"GET", "/api/users/alice/polls"},
		{"GET", "/api/users/alice/votes"},

		{"GET", "/api/polls"},
		{"POST", "/api/polls"},
		{"GET", "/api/polls/test-id"},
		{"POST", "/api/polls/test-id/votes"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/api/polls/test-id"},
		{"PUT", "/api/polls/test-id/votes"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method  string
		path    string
		headers map[string]string
	}{
		{"GET", "/api/user/me", nil},
		{"POST", "/api/polls", nil},
		{"POST", "/api/polls/test-id/votes", nil},
		{"GET", "/api/user/me", map[string]string{"Authorization": "Bearer not-a-token"}},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, tc.headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()

	alice := testutil.CreateTestUser(t, db, "alice")
	now := time.Now()
	poll := testutil.CreateTestPoll(t, db, alice.ID, "Routed?", now, now.Add(time.Hour), "Yes", "No")

	mux := NewRouter(db, cfg)

	t.Run("poll ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/polls/"+poll.ID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PollResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ID != poll.ID {
			t.Errorf("Expected poll %s, got %s", poll.ID, resp.ID)
		}
	})

	t.Run("username extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/users/alice", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var profile models.UserProfile
		testutil.AssertJSON(t, w, &profile)
		if profile.Username != "alice" || profile.PollCount != 1 {
			t.Errorf("Unexpected profile: %+v", profile)
		}
	})
}

func TestAuthenticatedVoteThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()

	alice := testutil.CreateTestUser(t, db, "alice")
	bob := testutil.CreateTestUser(t, db, "bob")
	now := time.Now()
	poll := testutil.CreateTestPoll(t, db, alice.ID, "Routed?", now, now.Add(time.Hour), "Yes", "No")

	mux := NewRouter(db, cfg)
	bobAuth := testutil.BearerToken(t, bob)

	req := testutil.MakeRequest("POST", "/api/polls/"+poll.ID+"/votes",
		models.VoteRequest{ChoiceID: poll.Choices[1].ID}, bobAuth)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var voted models.PollResponse
	testutil.AssertJSON(t, w, &voted)
	if voted.SelectedChoice == nil || *voted.SelectedChoice != poll.Choices[1].ID {
		t.Errorf("Expected selected choice %s, got %v", poll.Choices[1].ID, voted.SelectedChoice)
	}

	// The same token makes listings show the caller's choice
	req = testutil.MakeRequest("GET", "/api/polls", nil, bobAuth)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var page models.PagedResponse[models.PollResponse]
	testutil.AssertJSON(t, w, &page)
	if len(page.Content) != 1 || page.Content[0].SelectedChoice == nil {
		t.Fatalf("Expected bob's selection in listing, got %+v", page.Content)
	}

	// Anonymous callers see counts but no selection
	req = httptest.NewRequest("GET", "/api/polls/"+poll.ID, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var anon models.PollResponse
	testutil.AssertJSON(t, w, &anon)
	if anon.SelectedChoice != nil || anon.TotalVotes != 1 {
		t.Errorf("Unexpected anonymous view: %+v", anon)
	}

	req = testutil.MakeRequest("GET", "/api/user/me", nil, bobAuth)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var me models.UserSummary
	testutil.AssertJSON(t, w, &me)
	if me.Username != "bob" {
		t.Errorf("Expected bob, got %s", me.Username)
	}
}
