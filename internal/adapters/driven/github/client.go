package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.GitHubClient = (*Client)(nil)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

// Client provides GitHub REST API operations on behalf of a
// connected user. The access token is passed per call because each
// request acts for a different user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new GitHub API client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUser fetches the authenticated user's profile.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.GitHubUser, error) {
	resp, err := c.doRequest(ctx, "GET", "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user domain.GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if user.Login == "" {
		return nil, domain.ErrInvalidProfile
	}

	return &user, nil
}

// GetPrimaryEmail fetches the user's primary email address. Falls back
// to the first listed address when none is marked primary.
func (c *Client) GetPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	resp, err := c.doRequest(ctx, "GET", "/user/emails", accessToken, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", fmt.Errorf("decode emails: %w", err)
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", nil
}

// ListRepositories pages through repositories visible to the token,
// newest activity first.
func (c *Client) ListRepositories(ctx context.Context, accessToken string, page, perPage int) (*domain.RepositoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	path := fmt.Sprintf("/user/repos?per_page=%d&page=%d&sort=updated&affiliation=owner,collaborator,organization_member",
		perPage, page)

	resp, err := c.doRequest(ctx, "GET", path, accessToken, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var repos []domain.Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode repos: %w", err)
	}

	return &domain.RepositoryPage{
		Repositories: repos,
		Page:         page,
		PerPage:      perPage,
		HasMore:      len(repos) == perPage,
	}, nil
}

// doRequest performs an authenticated request and maps auth failures
// to domain errors. A 401 means the token is revoked or expired.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, &domain.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    apiMessage(resp.Body),
		}
	}

	return resp, nil
}

// apiMessage extracts the "message" field GitHub puts in error bodies,
// for example "Bad credentials" on a revoked token.
func apiMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return truncate(payload.Message, 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
