// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/models"
)

// TokenParser resolves a bearer token to the caller it was issued for
type TokenParser interface {
	Parse(token string) (*models.UserPrincipal, error)
}

type principalKey struct{}

// Authenticate attaches the caller to the request context when a valid
// bearer token is present. Requests without one, or with a token that
// fails verification, continue as anonymous.
func Authenticate(tokens TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := tokens.Parse(token)
			if err != nil {
				slog.Debug("ignoring invalid bearer token", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole rejects anonymous callers with 401 and callers lacking the
// role with 403.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFrom(r.Context())
			if principal == nil {
				ErrorResponse(w, http.StatusUnauthorized, "full authentication is required to access this resource")
				return
			}
			if !principal.HasRole(role) {
				ErrorResponse(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p *models.UserPrincipal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the authenticated caller, or nil for anonymous requests
func PrincipalFrom(ctx context.Context) *models.UserPrincipal {
	p, _ := ctx.Value(principalKey{}).(*models.UserPrincipal)
	return p
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, models.TokenTypeBearer) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
