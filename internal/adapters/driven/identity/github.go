package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure GitHubProvider implements the interface.
var _ driven.IdentityProvider = (*GitHubProvider)(nil)

// GitHubProvider signs users in with their GitHub account. Sign-in
// requests only profile scopes; the broader repo scopes are obtained
// later when the user explicitly connects their account.
type GitHubProvider struct {
	config *oauth2.Config
	apiURL string
}

// NewGitHubProvider creates a GitHub sign-in provider.
func NewGitHubProvider(clientID, clientSecret, redirectURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     oauthgithub.Endpoint,
		},
		apiURL: "https://api.github.com",
	}
}

// WithEndpoints overrides the provider URLs, used in tests.
func (p *GitHubProvider) WithEndpoints(endpoint oauth2.Endpoint, apiURL string) *GitHubProvider {
	p.config.Endpoint = endpoint
	p.apiURL = strings.TrimSuffix(apiURL, "/")
	return p
}

func (p *GitHubProvider) Name() domain.Provider {
	return domain.ProviderGitHub
}

// AuthURL returns the GitHub authorize URL for the given state
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the callback code for a normalised identity
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}

	client := p.config.Client(ctx, token)

	profile, err := p.fetchProfile(ctx, client)
	if err != nil {
		return nil, err
	}

	// The profile email is often hidden; the emails endpoint is the
	// reliable source. A failure here is non-fatal.
	emails := p.fetchEmails(ctx, client)
	primary := profile.Email
	if primary == "" && len(emails) > 0 {
		primary = emails[0]
	}
	if primary == "" {
		return nil, domain.ErrInvalidProfile
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	return &domain.Identity{
		Provider:   domain.ProviderGitHub,
		ProviderID: strconv.FormatInt(profile.ID, 10),
		Email:      primary,
		Name:       name,
		AvatarURL:  profile.AvatarURL,
		Emails:     emails,
	}, nil
}

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func (p *GitHubProvider) fetchProfile(ctx context.Context, client *http.Client) (*githubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.apiURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProfileFetch, resp.StatusCode)
	}

	var profile githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if profile.ID == 0 || profile.Login == "" {
		return nil, domain.ErrInvalidProfile
	}
	return &profile, nil
}

// fetchEmails returns verified addresses, primary first. Errors yield
// an empty list.
func (p *GitHubProvider) fetchEmails(ctx context.Context, client *http.Client) []string {
	req, err := http.NewRequestWithContext(ctx, "GET", p.apiURL+"/user/emails", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}

	var primary string
	var rest []string
	for _, e := range payload {
		if !e.Verified {
			continue
		}
		if e.Primary && primary == "" {
			primary = e.Email
			continue
		}
		rest = append(rest, e.Email)
	}

	if primary != "" {
		return append([]string{primary}, rest...)
	}
	return rest
}
