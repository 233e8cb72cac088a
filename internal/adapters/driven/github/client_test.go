package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gho_token" {
			t.Errorf("unexpected Authorization header: %s", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
			t.Errorf("unexpected Accept header: %s", got)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"id":         42,
			"login":      "octocat",
			"name":       "The Octocat",
			"avatar_url": "https://avatars.example.com/u/42",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	user, err := client.GetUser(context.Background(), "gho_token")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Login != "octocat" {
		t.Errorf("expected login octocat, got %s", user.Login)
	}
	if user.ID != 42 {
		t.Errorf("expected id 42, got %d", user.ID)
	}
}

func TestGetUser_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetUser(context.Background(), "gho_revoked")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// The provider's own message must survive for status reporting
	var provider *domain.ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if provider.Message != "Bad credentials" {
		t.Errorf("expected provider message captured, got %q", provider.Message)
	}
}

func TestGetUser_MissingLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 42})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetUser(context.Background(), "gho_token")
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestGetPrimaryEmail(t *testing.T) {
	tests := []struct {
		name     string
		payload  []map[string]any
		expected string
	}{
		{
			name: "primary marked",
			payload: []map[string]any{
				{"email": "other@example.com", "primary": false},
				{"email": "primary@example.com", "primary": true},
			},
			expected: "primary@example.com",
		},
		{
			name: "no primary falls back to first",
			payload: []map[string]any{
				{"email": "first@example.com", "primary": false},
				{"email": "second@example.com", "primary": false},
			},
			expected: "first@example.com",
		},
		{
			name:     "empty list",
			payload:  []map[string]any{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user/emails" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(tt.payload)
			}))
			defer server.Close()

			client := NewClient(server.URL)

			email, err := client.GetPrimaryEmail(context.Background(), "gho_token")
			if err != nil {
				t.Fatalf("GetPrimaryEmail: %v", err)
			}
			if email != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, email)
			}
		})
	}
}

func TestListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "2" {
			t.Errorf("unexpected pagination: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "repo-a", "full_name": "octocat/repo-a", "default_branch": "main"},
			{"id": 2, "name": "repo-b", "full_name": "octocat/repo-b", "default_branch": "main"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	page, err := client.ListRepositories(context.Background(), "gho_token", 2, 2)
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if len(page.Repositories) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(page.Repositories))
	}
	if !page.HasMore {
		t.Error("full page should report HasMore")
	}
	if page.Repositories[0].FullName != "octocat/repo-a" {
		t.Errorf("unexpected repo: %+v", page.Repositories[0])
	}
}

func TestListRepositories_ClampsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "1" {
			t.Errorf("expected page clamped to 1, got %s", q.Get("page"))
		}
		if q.Get("per_page") != "100" {
			t.Errorf("expected per_page clamped to 100, got %s", q.Get("per_page"))
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	page, err := client.ListRepositories(context.Background(), "gho_token", -3, 9999)
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if page.HasMore {
		t.Error("empty page should not report HasMore")
	}
}

func TestCreateWorkflowPR(t *testing.T) {
	var createdBranch string
	var committedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/repos/octocat/demo":
			json.NewEncoder(w).Encode(map[string]string{"default_branch": "main"})
		case r.Method == "GET" && r.URL.Path == "/repos/octocat/demo/git/ref/heads/main":
			json.NewEncoder(w).Encode(map[string]any{
				"object": map[string]string{"sha": "abc123"},
			})
		case r.Method == "POST" && r.URL.Path == "/repos/octocat/demo/git/refs":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["sha"] != "abc123" {
				t.Errorf("branch created from wrong sha: %s", body["sha"])
			}
			createdBranch = body["ref"]
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"ref": body["ref"]})
		case r.Method == "PUT" && r.URL.Path == "/repos/octocat/demo/contents/.github/workflows/review-raccoon.yml":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["content"] == "" {
				t.Error("expected base64 workflow content")
			}
			committedPath = r.URL.Path
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{})
		case r.Method == "POST" && r.URL.Path == "/repos/octocat/demo/pulls":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["base"] != "main" {
				t.Errorf("expected PR base main, got %s", body["base"])
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"number":   7,
				"html_url": "https://github.com/octocat/demo/pull/7",
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	pr, err := client.CreateWorkflowPR(context.Background(), "gho_token", "octocat", "demo")
	if err != nil {
		t.Fatalf("CreateWorkflowPR: %v", err)
	}
	if pr.Number != 7 {
		t.Errorf("expected PR number 7, got %d", pr.Number)
	}
	if pr.URL != "https://github.com/octocat/demo/pull/7" {
		t.Errorf("unexpected PR URL: %s", pr.URL)
	}
	if createdBranch == "" || committedPath == "" {
		t.Error("expected branch creation and workflow commit")
	}
	if pr.Branch == "" {
		t.Error("expected PR branch to be reported")
	}
}

func TestCreateWorkflowPR_RepoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.CreateWorkflowPR(context.Background(), "gho_token", "octocat", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderWorkflow(t *testing.T) {
	content, err := renderWorkflow()
	if err != nil {
		t.Fatalf("renderWorkflow: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("workflow is not valid YAML: %v", err)
	}
	if parsed["name"] != "Review Raccoon" {
		t.Errorf("unexpected workflow name: %v", parsed["name"])
	}
	if _, ok := parsed["jobs"]; !ok {
		t.Error("workflow must define jobs")
	}
}
