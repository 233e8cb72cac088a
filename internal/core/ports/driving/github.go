package driving

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// WorkflowRequest asks for the review workflow to be installed into a
// repository via pull request.
type WorkflowRequest struct {
	RepoOwner string `json:"repo_owner"`
	RepoName  string `json:"repo_name"`
}

// GitHubService exposes GitHub API operations for connected users
type GitHubService interface {
	// ListRepositories pages through repos visible to the user's token
	ListRepositories(ctx context.Context, userID string, page, perPage int) (*domain.RepositoryPage, error)

	// CreateWorkflowPR opens a pull request adding the review workflow
	// to the given repository
	CreateWorkflowPR(ctx context.Context, userID string, req WorkflowRequest) (*domain.WorkflowPR, error)
}
