// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newUserService(t *testing.T) (*UserService, *auth.TokenIssuer) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	issuer := auth.NewTokenIssuer(testutil.TestJWTSecret, time.Hour)
	svc := NewUserService(store.NewUserStore(conn), store.NewPollStore(conn), store.NewVoteStore(conn), issuer)
	svc.now = func() time.Time { return baseTime }
	return svc, issuer
}

func signUpAlice() models.SignUpRequest {
	return models.SignUpRequest{
		Name:     "Alice Smith",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, issuer := newUserService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, signUpAlice())
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("Expected password to be hashed")
	}
	if !user.CreatedAt.Equal(baseTime) {
		t.Errorf("Expected created_at %v, got %v", baseTime, user.CreatedAt)
	}

	for _, login := range []string{"alice", "alice@example.com"} {
		t.Run("sign in with "+login, func(t *testing.T) {
			resp, err := svc.SignIn(ctx, models.SignInRequest{UsernameOrEmail: login, Password: "secret1"})
			if err != nil {
				t.Fatalf("SignIn failed: %v", err)
			}
			if resp.TokenType != models.TokenTypeBearer {
				t.Errorf("Expected token type Bearer, got %s", resp.TokenType)
			}

			principal, err := issuer.Parse(resp.AccessToken)
			if err != nil {
				t.Fatalf("Issued token did not parse: %v", err)
			}
			if principal.ID != user.ID || !principal.HasRole(models.RoleUser) {
				t.Errorf("Unexpected principal: %+v", principal)
			}
		})
	}

	t.Run("bad credentials", func(t *testing.T) {
		testCases := []models.SignInRequest{
			{UsernameOrEmail: "alice", Password: "wrong"},
			{UsernameOrEmail: "nobody", Password: "secret1"},
		}
		for _, req := range testCases {
			_, err := svc.SignIn(ctx, req)
			if !errors.Is(err, ErrBadCredentials) {
				t.Errorf("Expected ErrBadCredentials for %s, got %v", req.UsernameOrEmail, err)
			}
		}
	})
}

func TestSignUp_Conflicts(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpAlice()); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	sameUsername := signUpAlice()
	sameUsername.Email = "other@example.com"
	if _, err := svc.SignUp(ctx, sameUsername); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}

	sameEmail := signUpAlice()
	sameEmail.Username = "alice2"
	if _, err := svc.SignUp(ctx, sameEmail); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

// racingUsers behaves as if another sign-up claimed the account between
// the availability checks and the insert.
type racingUsers struct {
	UserStore
	emailErr    error
	emailChecks int
}

func (r *racingUsers) Create(ctx context.Context, user models.User) error {
	return store.ErrDuplicate
}

func (r *racingUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.emailChecks++
	if r.emailChecks > 1 {
		return false, r.emailErr
	}
	return false, nil
}

func TestSignUp_LostRace(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	issuer := auth.NewTokenIssuer(testutil.TestJWTSecret, time.Hour)
	ctx := context.Background()

	t.Run("lookup error is returned", func(t *testing.T) {
		lookupErr := errors.New("connection reset")
		users := &racingUsers{UserStore: store.NewUserStore(conn), emailErr: lookupErr}
		svc := NewUserService(users, store.NewPollStore(conn), store.NewVoteStore(conn), issuer)

		_, err := svc.SignUp(ctx, signUpAlice())
		if !errors.Is(err, lookupErr) {
			t.Errorf("Expected lookup error, got %v", err)
		}
	})

	t.Run("username conflict", func(t *testing.T) {
		users := &racingUsers{UserStore: store.NewUserStore(conn)}
		svc := NewUserService(users, store.NewPollStore(conn), store.NewVoteStore(conn), issuer)

		_, err := svc.SignUp(ctx, signUpAlice())
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("Expected ErrUsernameTaken, got %v", err)
		}
	})
}

func TestAvailability(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, signUpAlice()); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	testCases := []struct {
		name      string
		check     func() (models.UserIdentityAvailability, error)
		available bool
	}{
		{"taken username", func() (models.UserIdentityAvailability, error) { return svc.CheckUsernameAvailability(ctx, "alice") }, false},
		{"free username", func() (models.UserIdentityAvailability, error) { return svc.CheckUsernameAvailability(ctx, "bob") }, true},
		{"taken email", func() (models.UserIdentityAvailability, error) { return svc.CheckEmailAvailability(ctx, "alice@example.com") }, false},
		{"free email", func() (models.UserIdentityAvailability, error) { return svc.CheckEmailAvailability(ctx, "alice") }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tc.check()
			if err != nil {
				t.Fatalf("Availability check failed: %v", err)
			}
			if resp.Available != tc.available {
				t.Errorf("Expected available=%v, got %v", tc.available, resp.Available)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := NewUserService(store.NewUserStore(conn), store.NewPollStore(conn), store.NewVoteStore(conn), auth.NewTokenIssuer("s", time.Hour))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	p1 := testutil.CreateTestPoll(t, conn, alice.ID, "One", baseTime, baseTime.Add(time.Hour), "A", "B")
	testutil.CreateTestPoll(t, conn, alice.ID, "Two", baseTime, baseTime.Add(time.Hour), "A", "B")
	testutil.CastTestVote(t, conn, p1.ID, p1.Choices[0].ID, alice.ID, baseTime)
	testutil.CastTestVote(t, conn, p1.ID, p1.Choices[1].ID, bob.ID, baseTime)

	profile, err := svc.Profile(ctx, "alice")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.ID != alice.ID || profile.Username != "alice" || profile.Name != alice.Name {
		t.Errorf("Unexpected profile: %+v", profile)
	}
	if profile.PollCount != 2 || profile.VoteCount != 1 {
		t.Errorf("Expected 2 polls and 1 vote, got %d and %d", profile.PollCount, profile.VoteCount)
	}

	if _, err := svc.Profile(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newUserService(t)

	summary, err := svc.CurrentUser(&models.UserPrincipal{ID: "u1", Username: "alice", Name: "Alice"})
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if summary != (models.UserSummary{ID: "u1", Username: "alice", Name: "Alice"}) {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	if _, err := svc.CurrentUser(nil); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}
