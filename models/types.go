package models

import "time"

// Role names
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Token type returned on sign-in
const TokenTypeBearer = "Bearer"

// Request types

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=40"`
	Username string `json:"username" validate:"required,min=3,max=15"`
	Email    string `json:"email" validate:"required,email,max=40"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

type SignInRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type ChoiceRequest struct {
	Text string `json:"text" validate:"required,max=40"`
}

type PollLength struct {
	Days  int `json:"days" validate:"min=0,max=7"`
	Hours int `json:"hours" validate:"min=0,max=23"`
}

// Duration converts the requested length with plain duration arithmetic,
// so 30 hours is one day and six hours.
func (l PollLength) Duration() time.Duration {
	return time.Duration(l.Days)*24*time.Hour + time.Duration(l.Hours)*time.Hour
}

type PollRequest struct {
	Question   string          `json:"question" validate:"required,max=140"`
	Choices    []ChoiceRequest `json:"choices" validate:"required,min=2,max=6,dive"`
	PollLength PollLength      `json:"pollLength"`
}

type VoteRequest struct {
	ChoiceID string `json:"choiceId" validate:"required"`
}

// Response types

type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CreatePollResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type JwtAuthenticationResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type UserIdentityAvailability struct {
	Available bool `json:"available"`
}

type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	JoinedAt  time.Time `json:"joinedAt"`
	PollCount int64     `json:"pollCount"`
	VoteCount int64     `json:"voteCount"`
}

type ChoiceResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"voteCount"`
}

type PollResponse struct {
	ID                 string           `json:"id"`
	Question           string           `json:"question"`
	Choices            []ChoiceResponse `json:"choices"`
	CreatedBy          UserSummary      `json:"createdBy"`
	CreationDateTime   time.Time        `json:"creationDateTime"`
	ExpirationDateTime time.Time        `json:"expirationDateTime"`
	Expired            bool             `json:"expired"`
	SelectedChoice     *string          `json:"selectedChoice,omitempty"`
	TotalVotes         int64            `json:"totalVotes"`
}

type PagedResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPagedResponse fills in the page count and last-page flag from the
// total element count.
func NewPagedResponse[T any](content []T, page, size int, total int64) PagedResponse[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}

// Domain types

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never expose in JSON
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Roles        []string  `db:"-" json:"roles,omitempty"`
}

// UserPrincipal is the authenticated caller, resolved from a bearer token.
type UserPrincipal struct {
	ID       string
	Username string
	Name     string
	Roles    []string
}

func (p *UserPrincipal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Poll struct {
	ID                 string    `db:"id"`
	Question           string    `db:"question"`
	ExpirationDateTime time.Time `db:"expiration_date_time"`
	CreatedBy          string    `db:"created_by"`
	UpdatedBy          string    `db:"updated_by"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
	Choices            []Choice  `db:"-"`
}

// Choice returns the choice with the given id if it belongs to this poll.
func (p Poll) Choice(id string) (Choice, bool) {
	for _, c := range p.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

type Choice struct {
	ID       string `db:"id"`
	PollID   string `db:"poll_id"`
	Text     string `db:"text"`
	Position int    `db:"position"`
}

type Vote struct {
	ID        string    `db:"id"`
	PollID    string    `db:"poll_id"`
	ChoiceID  string    `db:"choice_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ChoiceVoteCount struct {
	ChoiceID  string `db:"choice_id"`
	VoteCount int64  `db:"vote_count"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
