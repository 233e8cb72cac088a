package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

const (
	workflowPath    = ".github/workflows/review-raccoon.yml"
	workflowCommit  = "Add Review Raccoon code review workflow"
	workflowPRTitle = "Integrate Review Raccoon automated code reviews"
	branchPrefix    = "review-raccoon-integration-"
)

const workflowPRBody = `This pull request installs the Review Raccoon workflow. ` +
	`Once merged, every pull request in this repository receives an automated code review.`

// workflowSpec is the GitHub Actions workflow rendered into the repo.
type workflowSpec struct {
	Name string                 `yaml:"name"`
	On   map[string]workflowOn  `yaml:"on"`
	Jobs map[string]workflowJob `yaml:"jobs"`
}

type workflowOn struct {
	Types []string `yaml:"types,omitempty"`
}

type workflowJob struct {
	RunsOn string         `yaml:"runs-on"`
	Steps  []workflowStep `yaml:"steps"`
}

type workflowStep struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
}

// renderWorkflow produces the review workflow YAML.
func renderWorkflow() ([]byte, error) {
	spec := workflowSpec{
		Name: "Review Raccoon",
		On: map[string]workflowOn{
			"pull_request": {Types: []string{"opened", "synchronize", "reopened"}},
		},
		Jobs: map[string]workflowJob{
			"review": {
				RunsOn: "ubuntu-latest",
				Steps: []workflowStep{
					{
						Name: "Checkout repository",
						Uses: "actions/checkout@v4",
					},
					{
						Name: "Run Review Raccoon",
						Uses: "review-raccoon/action@v1",
						With: map[string]string{
							"github-token": "${{ secrets.GITHUB_TOKEN }}",
						},
					},
				},
			},
		},
	}
	return yaml.Marshal(spec)
}

// CreateWorkflowPR installs the review workflow into a repository via
// a pull request: branch off the default branch, commit the workflow
// file, open the PR. Nothing is cloned locally; every step is a REST
// call.
func (c *Client) CreateWorkflowPR(ctx context.Context, accessToken, owner, repo string) (*domain.WorkflowPR, error) {
	base, err := c.defaultBranch(ctx, accessToken, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}

	baseSHA, err := c.refSHA(ctx, accessToken, owner, repo, base)
	if err != nil {
		return nil, fmt.Errorf("get base ref: %w", err)
	}

	branch := fmt.Sprintf("%s%d", branchPrefix, time.Now().Unix())
	if err := c.createBranch(ctx, accessToken, owner, repo, branch, baseSHA); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	if err := c.commitWorkflowFile(ctx, accessToken, owner, repo, branch); err != nil {
		return nil, fmt.Errorf("commit workflow: %w", err)
	}

	pr, err := c.openPullRequest(ctx, accessToken, owner, repo, branch, base)
	if err != nil {
		return nil, fmt.Errorf("open pull request: %w", err)
	}
	pr.Branch = branch
	return pr, nil
}

func (c *Client) defaultBranch(ctx context.Context, accessToken, owner, repo string) (string, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/repos/%s/%s", owner, repo), accessToken, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var repository struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&repository); err != nil {
		return "", fmt.Errorf("decode repository: %w", err)
	}
	if repository.DefaultBranch == "" {
		repository.DefaultBranch = "main"
	}
	return repository.DefaultBranch, nil
}

func (c *Client) refSHA(ctx context.Context, accessToken, owner, repo, branch string) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, branch)
	resp, err := c.doRequest(ctx, "GET", path, accessToken, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return "", fmt.Errorf("decode ref: %w", err)
	}
	return ref.Object.SHA, nil
}

func (c *Client) createBranch(ctx context.Context, accessToken, owner, repo, branch, sha string) error {
	path := fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo)
	resp, err := c.doRequest(ctx, "POST", path, accessToken, map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": sha,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) commitWorkflowFile(ctx context.Context, accessToken, owner, repo, branch string) error {
	content, err := renderWorkflow()
	if err != nil {
		return fmt.Errorf("render workflow: %w", err)
	}

	path := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, workflowPath)
	resp, err := c.doRequest(ctx, "PUT", path, accessToken, map[string]string{
		"message": workflowCommit,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) openPullRequest(ctx context.Context, accessToken, owner, repo, head, base string) (*domain.WorkflowPR, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	resp, err := c.doRequest(ctx, "POST", path, accessToken, map[string]string{
		"title": workflowPRTitle,
		"body":  workflowPRBody,
		"head":  head,
		"base":  base,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var pr struct {
		Number  int    `json:"number"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode pull request: %w", err)
	}

	return &domain.WorkflowPR{Number: pr.Number, URL: pr.HTMLURL}, nil
}
