package services

import (
	"context"
	"strings"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Ensure githubService implements GitHubService
var _ driving.GitHubService = (*githubService)(nil)

// githubService performs GitHub API operations with the caller's
// stored token, resolved through the connection service.
type githubService struct {
	connections driving.ConnectionService
	github      driven.GitHubClient
}

// NewGitHubService creates a new GitHubService
func NewGitHubService(
	connections driving.ConnectionService,
	github driven.GitHubClient,
) driving.GitHubService {
	return &githubService{
		connections: connections,
		github:      github,
	}
}

// ListRepositories pages through repos visible to the user's token
func (s *githubService) ListRepositories(ctx context.Context, userID string, page, perPage int) (*domain.RepositoryPage, error) {
	token, err := s.connections.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.github.ListRepositories(ctx, token, page, perPage)
}

// CreateWorkflowPR opens a pull request adding the review workflow to
// the given repository
func (s *githubService) CreateWorkflowPR(ctx context.Context, userID string, req driving.WorkflowRequest) (*domain.WorkflowPR, error) {
	owner := strings.TrimSpace(req.RepoOwner)
	repo := strings.TrimSpace(req.RepoName)
	if owner == "" || repo == "" {
		return nil, domain.ErrInvalidInput
	}

	token, err := s.connections.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.github.CreateWorkflowPR(ctx, token, owner, repo)
}
