package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure OAuthClient implements the interface.
var _ driven.OAuthClient = (*OAuthClient)(nil)

// ConnectScopes are requested when linking a GitHub account. The repo
// and workflow scopes let the service read repositories and open the
// workflow pull request later.
const ConnectScopes = "read:user user:email repo workflow"

// OAuthClient drives the GitHub OAuth code flow.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	tokenURL     string
	httpClient   *http.Client
}

// NewOAuthClient creates an OAuth client for the given app credentials.
func NewOAuthClient(clientID, clientSecret, redirectURI string) *OAuthClient {
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authURL:      "https://github.com/login/oauth/authorize",
		tokenURL:     "https://github.com/login/oauth/access_token",
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoints overrides the provider URLs, used in tests.
func (c *OAuthClient) WithEndpoints(authURL, tokenURL string) *OAuthClient {
	c.authURL = authURL
	c.tokenURL = tokenURL
	return c
}

// BuildAuthURL constructs the GitHub OAuth authorization URL.
func (c *OAuthClient) BuildAuthURL(state string) string {
	params := url.Values{
		"client_id":    {c.clientID},
		"redirect_uri": {c.redirectURI},
		"scope":        {ConnectScopes},
		"state":        {state},
	}
	return c.authURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for tokens.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.TokenExchange, error) {
	return c.tokenRequest(ctx, url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
	})
}

// RefreshToken exchanges a refresh token for a fresh access token.
// Only GitHub Apps with expiring user tokens take this path.
func (c *OAuthClient) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenExchange, error) {
	return c.tokenRequest(ctx, url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

func (c *OAuthClient) tokenRequest(ctx context.Context, params url.Values) (*domain.TokenExchange, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrTokenExchange, resp.StatusCode)
	}

	var exchange domain.TokenExchange
	if err := json.Unmarshal(body, &exchange); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// GitHub reports grant errors inside a 200 response
	if exchange.Error != "" {
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrTokenExchange, exchange.Error, exchange.ErrorDesc)
	}
	if exchange.AccessToken == "" {
		return nil, domain.ErrNoAccessToken
	}

	return &exchange, nil
}
