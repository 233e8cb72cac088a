package driven

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// OAuthClient drives the GitHub OAuth code flow for account connection.
type OAuthClient interface {
	// BuildAuthURL returns the provider authorize URL carrying the
	// given CSRF state.
	BuildAuthURL(state string) string

	// ExchangeCode trades an authorization code for tokens
	ExchangeCode(ctx context.Context, code string) (*domain.TokenExchange, error)

	// RefreshToken trades a refresh token for a fresh access token.
	// Only GitHub Apps with expiring tokens ever take this path.
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenExchange, error)
}

// GitHubClient calls the GitHub REST API on behalf of a connected user.
type GitHubClient interface {
	// GetUser fetches the authenticated user's profile. A 401 maps to
	// domain.ErrUnauthorized, which callers use as the token-invalid
	// signal.
	GetUser(ctx context.Context, accessToken string) (*domain.GitHubUser, error)

	// GetPrimaryEmail fetches the primary verified email. Failures are
	// non-fatal; callers fall back to an empty email.
	GetPrimaryEmail(ctx context.Context, accessToken string) (string, error)

	// ListRepositories pages through repos visible to the token
	ListRepositories(ctx context.Context, accessToken string, page, perPage int) (*domain.RepositoryPage, error)

	// CreateWorkflowPR opens a pull request adding the review workflow
	// file to the given repository
	CreateWorkflowPR(ctx context.Context, accessToken, owner, repo string) (*domain.WorkflowPR, error)
}
