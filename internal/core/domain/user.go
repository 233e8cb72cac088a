package domain

import "time"

// Provider identifies the identity provider a user signed in with
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// User represents an account holder. A user always originates from an
// identity sign-in (Google or GitHub); the GitHub connection is a
// separate, optional link carrying an API token.
type User struct {
	ID                string            `json:"id"`
	Email             string            `json:"email"`
	Name              string            `json:"name"`
	AvatarURL         string            `json:"avatar_url,omitempty"`
	GoogleID          string            `json:"-"`
	GitHubID          string            `json:"-"`
	AdditionalEmails  []string          `json:"additional_emails,omitempty"`
	PreferredProvider Provider          `json:"preferred_provider,omitempty"`
	GitHub            *GitHubConnection `json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	LastLoginAt       *time.Time        `json:"last_login_at,omitempty"`
}

// GitHubConnection holds the linked GitHub account. Token material is
// stored encrypted and never serialized.
type GitHubConnection struct {
	Username         string     `json:"username"`
	Email            string     `json:"email,omitempty"`
	AccessTokenHash  string     `json:"-"`
	AccessTokenIV    string     `json:"-"`
	RefreshTokenHash string     `json:"-"`
	RefreshTokenIV   string     `json:"-"`
	Connected        bool       `json:"connected"`
	ConnectedAt      *time.Time `json:"connected_at,omitempty"`
}

// HasToken reports whether an encrypted access token is stored.
// Hash and IV are written together, so checking both guards against
// half-written rows.
func (c *GitHubConnection) HasToken() bool {
	return c != nil && c.AccessTokenHash != "" && c.AccessTokenIV != ""
}

// HasRefreshToken reports whether an encrypted refresh token is stored.
func (c *GitHubConnection) HasRefreshToken() bool {
	return c != nil && c.RefreshTokenHash != "" && c.RefreshTokenIV != ""
}

// UserSummary provides a safe view of user data (no token material)
type UserSummary struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	GitHubLogin string     `json:"github_login,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	s := &UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		LastLoginAt: u.LastLoginAt,
	}
	if u.GitHub != nil && u.GitHub.Connected {
		s.GitHubLogin = u.GitHub.Username
	}
	return s
}

// KnowsEmail checks whether the address belongs to this user, either as
// the primary email or one of the additional emails collected from
// identity providers. Matching is exact; callers normalise case first.
func (u *User) KnowsEmail(email string) bool {
	if u.Email == email {
		return true
	}
	for _, e := range u.AdditionalEmails {
		if e == email {
			return true
		}
	}
	return false
}

// AddEmail records an additional email if it is not already known.
func (u *User) AddEmail(email string) {
	if email == "" || u.KnowsEmail(email) {
		return
	}
	u.AdditionalEmails = append(u.AdditionalEmails, email)
}
