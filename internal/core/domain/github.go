package domain

import "time"

// GitHubUser is the profile payload from the GitHub user endpoint.
// Login is the only field we require; everything else is best-effort.
type GitHubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Repository is a repo visible to the connected account.
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	HTMLURL       string    `json:"html_url"`
	Description   string    `json:"description,omitempty"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RepositoryPage is one page of the repository listing.
type RepositoryPage struct {
	Repositories []Repository `json:"repositories"`
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	HasMore      bool         `json:"has_more"`
}

// WorkflowPR describes the pull request opened to install the review
// workflow into a repository.
type WorkflowPR struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	Branch string `json:"branch"`
}
