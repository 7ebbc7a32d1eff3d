// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
)

type stubTokens map[string]*models.UserPrincipal

func (s stubTokens) Parse(token string) (*models.UserPrincipal, error) {
	p, ok := s[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return p, nil
}

func TestAuthenticate(t *testing.T) {
	alice := &models.UserPrincipal{ID: "u1", Username: "alice", Roles: []string{models.RoleUser}}
	tokens := stubTokens{"good": alice}

	testCases := []struct {
		name       string
		header     string
		expectedID string
	}{
		{"no header", "", ""},
		{"valid bearer", "Bearer good", "u1"},
		{"lowercase scheme", "bearer good", "u1"},
		{"invalid token stays anonymous", "Bearer bad", ""},
		{"wrong scheme", "Basic good", ""},
		{"empty token", "Bearer ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got *models.UserPrincipal
			handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = PrincipalFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/polls", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if tc.expectedID == "" {
				if got != nil {
					t.Errorf("Expected anonymous request, got principal %+v", got)
				}
				return
			}
			if got == nil || got.ID != tc.expectedID {
				t.Errorf("Expected principal %s, got %+v", tc.expectedID, got)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name           string
		principal      *models.UserPrincipal
		expectedStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"missing role", &models.UserPrincipal{ID: "u1"}, http.StatusForbidden},
		{"has role", &models.UserPrincipal{ID: "u1", Roles: []string{models.RoleUser}}, http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireRole(models.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest("POST", "/api/polls", nil)
			if tc.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tc.principal))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
		})
	}
}
