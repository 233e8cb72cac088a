package mocks

import (
	"context"
	"sync"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure mocks implement the ports
var (
	_ driven.OAuthClient  = (*MockOAuthClient)(nil)
	_ driven.GitHubClient = (*MockGitHubClient)(nil)
)

// MockOAuthClient is a mock implementation of OAuthClient for testing
type MockOAuthClient struct {
	mu sync.Mutex

	ExchangeResp *domain.TokenExchange
	ExchangeErr  error
	RefreshResp  *domain.TokenExchange
	RefreshErr   error

	// Recorded calls
	ExchangedCodes  []string
	RefreshedTokens []string
}

// NewMockOAuthClient creates a new MockOAuthClient
func NewMockOAuthClient() *MockOAuthClient {
	return &MockOAuthClient{}
}

func (m *MockOAuthClient) BuildAuthURL(state string) string {
	return "https://github.test/authorize?state=" + state
}

func (m *MockOAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.TokenExchange, error) {
	m.mu.Lock()
	m.ExchangedCodes = append(m.ExchangedCodes, code)
	m.mu.Unlock()
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.ExchangeResp, nil
}

func (m *MockOAuthClient) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenExchange, error) {
	m.mu.Lock()
	m.RefreshedTokens = append(m.RefreshedTokens, refreshToken)
	m.mu.Unlock()
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.RefreshResp, nil
}

// MockGitHubClient is a mock implementation of GitHubClient for testing.
// Tokens registered via AddValidToken are accepted; every other token
// gets a 401 ProviderError carrying GitHub's "Bad credentials" message.
type MockGitHubClient struct {
	mu          sync.Mutex
	validTokens map[string]*domain.GitHubUser

	PrimaryEmail    string
	PrimaryEmailErr error
	GetUserErr      error

	ListResp *domain.RepositoryPage
	ListErr  error

	WorkflowResp *domain.WorkflowPR
	WorkflowErr  error

	// Recorded calls
	GetUserCalls int
}

// NewMockGitHubClient creates a new MockGitHubClient
func NewMockGitHubClient() *MockGitHubClient {
	return &MockGitHubClient{
		validTokens: make(map[string]*domain.GitHubUser),
	}
}

// AddValidToken registers a token the mock API will accept
func (m *MockGitHubClient) AddValidToken(token string, user *domain.GitHubUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validTokens[token] = user
}

// RevokeToken makes a previously valid token return 401
func (m *MockGitHubClient) RevokeToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.validTokens, token)
}

func (m *MockGitHubClient) GetUser(ctx context.Context, accessToken string) (*domain.GitHubUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetUserCalls++
	if m.GetUserErr != nil {
		return nil, m.GetUserErr
	}
	user, ok := m.validTokens[accessToken]
	if !ok {
		return nil, &domain.ProviderError{StatusCode: 401, Message: "Bad credentials"}
	}
	return user, nil
}

func (m *MockGitHubClient) GetPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	if m.PrimaryEmailErr != nil {
		return "", m.PrimaryEmailErr
	}
	return m.PrimaryEmail, nil
}

func (m *MockGitHubClient) ListRepositories(ctx context.Context, accessToken string, page, perPage int) (*domain.RepositoryPage, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResp, nil
}

func (m *MockGitHubClient) CreateWorkflowPR(ctx context.Context, accessToken, owner, repo string) (*domain.WorkflowPR, error) {
	if m.WorkflowErr != nil {
		return nil, m.WorkflowErr
	}
	return m.WorkflowResp, nil
}
