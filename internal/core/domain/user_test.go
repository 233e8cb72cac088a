package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserToSummary(t *testing.T) {
	now := time.Now()
	user := &User{
		ID:          "user-123",
		Email:       "test@example.com",
		Name:        "Test User",
		AvatarURL:   "https://avatars.example.com/u/1",
		GoogleID:    "google-uid-1",
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLoginAt: &now,
		GitHub: &GitHubConnection{
			Username:  "octocat",
			Connected: true,
		},
	}

	summary := user.ToSummary()

	if summary.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, summary.ID)
	}
	if summary.Email != user.Email {
		t.Errorf("expected Email %s, got %s", user.Email, summary.Email)
	}
	if summary.Name != user.Name {
		t.Errorf("expected Name %s, got %s", user.Name, summary.Name)
	}
	if summary.GitHubLogin != "octocat" {
		t.Errorf("expected GitHubLogin octocat, got %s", summary.GitHubLogin)
	}
	if summary.LastLoginAt == nil {
		t.Error("expected LastLoginAt to be set")
	}
}

func TestUserToSummaryDisconnected(t *testing.T) {
	user := &User{
		ID:     "user-123",
		GitHub: &GitHubConnection{Username: "stale", Connected: false},
	}

	if got := user.ToSummary().GitHubLogin; got != "" {
		t.Errorf("expected empty GitHubLogin for disconnected user, got %s", got)
	}
}

func TestGitHubConnectionHasToken(t *testing.T) {
	tests := []struct {
		name     string
		conn     *GitHubConnection
		expected bool
	}{
		{"nil connection", nil, false},
		{"empty connection", &GitHubConnection{}, false},
		{"hash only", &GitHubConnection{AccessTokenHash: "abc"}, false},
		{"iv only", &GitHubConnection{AccessTokenIV: "def"}, false},
		{"both present", &GitHubConnection{AccessTokenHash: "abc", AccessTokenIV: "def"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.conn.HasToken() != tt.expected {
				t.Errorf("expected HasToken() = %v", tt.expected)
			}
		})
	}
}

func TestGitHubConnectionNeverSerializesTokens(t *testing.T) {
	conn := &GitHubConnection{
		Username:        "octocat",
		AccessTokenHash: "deadbeef",
		AccessTokenIV:   "cafebabe",
	}

	data, err := json.Marshal(conn)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "deadbeef") || strings.Contains(string(data), "cafebabe") {
		t.Errorf("token material leaked into JSON: %s", data)
	}
}

func TestUserKnowsEmail(t *testing.T) {
	user := &User{
		Email:            "primary@example.com",
		AdditionalEmails: []string{"work@example.com"},
	}

	tests := []struct {
		email    string
		expected bool
	}{
		{"primary@example.com", true},
		{"work@example.com", true},
		{"other@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if user.KnowsEmail(tt.email) != tt.expected {
				t.Errorf("expected KnowsEmail(%s) = %v", tt.email, tt.expected)
			}
		})
	}
}

func TestUserAddEmail(t *testing.T) {
	user := &User{Email: "primary@example.com"}

	user.AddEmail("work@example.com")
	user.AddEmail("work@example.com")
	user.AddEmail("primary@example.com")
	user.AddEmail("")

	if len(user.AdditionalEmails) != 1 {
		t.Errorf("expected 1 additional email, got %d", len(user.AdditionalEmails))
	}
}
