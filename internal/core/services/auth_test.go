package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven/mocks"
)

func newTestAuthService(providers ...driven.IdentityProvider) (*mocks.MockUserStore, *mocks.MockSessionStore, *mocks.MockAuthAdapter, *authService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(userStore, sessionStore, authAdapter, providers...).(*authService)
	return userStore, sessionStore, authAdapter, svc
}

func googleIdentity() *domain.Identity {
	return &domain.Identity{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-111",
		Email:      "alice@example.com",
		Name:       "Alice",
		AvatarURL:  "https://avatar.test/alice.png",
	}
}

func TestAuthService_BeginSignIn(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	_, _, _, svc := newTestAuthService(provider)

	authURL, state, err := svc.BeginSignIn(context.Background(), domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state == "" {
		t.Error("expected a non-empty state")
	}
	if !strings.Contains(authURL, "state="+state) {
		t.Errorf("expected auth URL to carry the state, got %s", authURL)
	}
}

func TestAuthService_BeginSignIn_UnknownProvider(t *testing.T) {
	_, _, _, svc := newTestAuthService()

	_, _, err := svc.BeginSignIn(context.Background(), domain.Provider("gitlab"))
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_CompleteSignIn_NewUser(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	userStore, _, _, svc := newTestAuthService(provider)

	resp, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-1", "agent", "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token to be generated")
	}
	if resp.RefreshToken == "" {
		t.Error("expected refresh token to be generated")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("expected user email alice@example.com, got %s", resp.User.Email)
	}

	if userStore.Count() != 1 {
		t.Fatalf("expected 1 user created, got %d", userStore.Count())
	}
	user, err := userStore.GetByProviderID(context.Background(), domain.ProviderGoogle, "google-111")
	if err != nil {
		t.Fatalf("expected user findable by provider id: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("expected name Alice, got %s", user.Name)
	}
	if user.LastLoginAt == nil {
		t.Error("expected last login to be set")
	}
}

func TestAuthService_CompleteSignIn_ExistingUserByProviderID(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	userStore, _, _, svc := newTestAuthService(provider)

	existing := &domain.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		Name:     "Alice Original",
		GoogleID: "google-111",
	}
	_ = userStore.Save(context.Background(), existing)

	resp, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "user-1" {
		t.Errorf("expected existing user to be reused, got %s", resp.User.ID)
	}
	if userStore.Count() != 1 {
		t.Errorf("expected no new user, got %d", userStore.Count())
	}
	if resp.User.Name != "Alice Original" {
		t.Errorf("expected existing name kept, got %s", resp.User.Name)
	}
}

func TestAuthService_CompleteSignIn_MergesByEmail(t *testing.T) {
	// GitHub sign-in with an email already owned by a Google user
	// should land on the Google user's account
	identity := &domain.Identity{
		Provider:   domain.ProviderGitHub,
		ProviderID: "98765",
		Email:      "alice@example.com",
		Name:       "alice-gh",
		Emails:     []string{"alice@example.com", "alice@work.example.com"},
	}
	provider := mocks.NewMockIdentityProvider(domain.ProviderGitHub, identity)
	userStore, _, _, svc := newTestAuthService(provider)

	existing := &domain.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		Name:     "Alice",
		GoogleID: "google-111",
	}
	_ = userStore.Save(context.Background(), existing)

	resp, err := svc.CompleteSignIn(context.Background(), domain.ProviderGitHub, "code-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "user-1" {
		t.Errorf("expected accounts to merge, got user %s", resp.User.ID)
	}

	user, _ := userStore.Get(context.Background(), "user-1")
	if user.GitHubID != "98765" {
		t.Errorf("expected GitHub ID attached, got %q", user.GitHubID)
	}
	if user.GoogleID != "google-111" {
		t.Error("expected Google ID preserved")
	}
	if !user.KnowsEmail("alice@work.example.com") {
		t.Error("expected secondary email recorded")
	}
	for _, e := range user.AdditionalEmails {
		if e == user.Email {
			t.Error("primary email should not appear in additional emails")
		}
	}
}

func TestAuthService_CompleteSignIn_NoCode(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	_, _, _, svc := newTestAuthService(provider)

	_, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "", "", "")
	if err != domain.ErrNoCode {
		t.Errorf("expected ErrNoCode, got %v", err)
	}
}

func TestAuthService_CompleteSignIn_ExchangeFails(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, nil)
	provider.ExchangeErr = domain.ErrTokenExchange
	userStore, _, _, svc := newTestAuthService(provider)

	_, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "bad-code", "", "")
	if err != domain.ErrTokenExchange {
		t.Errorf("expected ErrTokenExchange, got %v", err)
	}
	if userStore.Count() != 0 {
		t.Error("expected no user created on failed exchange")
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	_, sessionStore, authAdapter, svc := newTestAuthService()

	tests := []struct {
		name      string
		setupFunc func(ctx context.Context) string
		wantErr   error
	}{
		{
			name: "empty token",
			setupFunc: func(ctx context.Context) string {
				return ""
			},
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name: "malformed token",
			setupFunc: func(ctx context.Context) string {
				return "not!valid@base64#"
			},
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name: "expired token",
			setupFunc: func(ctx context.Context) string {
				claims := &domain.TokenClaims{
					UserID:    "user-123",
					Email:     "test@example.com",
					SessionID: "session-123",
					IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
					ExpiresAt: time.Now().Add(-1 * time.Hour).Unix(),
				}
				token, _ := authAdapter.GenerateToken(claims)
				return token
			},
			wantErr: domain.ErrTokenExpired,
		},
		{
			name: "session not found",
			setupFunc: func(ctx context.Context) string {
				claims := &domain.TokenClaims{
					UserID:    "user-123",
					Email:     "test@example.com",
					SessionID: "non-existent-session",
					IssuedAt:  time.Now().Unix(),
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
				}
				token, _ := authAdapter.GenerateToken(claims)
				return token
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "valid token with session",
			setupFunc: func(ctx context.Context) string {
				claims := &domain.TokenClaims{
					UserID:    "user-123",
					Email:     "test@example.com",
					SessionID: "session-456",
					IssuedAt:  time.Now().Unix(),
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
				}
				token, _ := authAdapter.GenerateToken(claims)
				_ = sessionStore.Save(ctx, &domain.Session{
					ID:        "session-456",
					UserID:    "user-123",
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
					CreatedAt: time.Now(),
				})
				return token
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			token := tt.setupFunc(ctx)

			authCtx, err := svc.ValidateToken(ctx, token)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if authCtx.UserID != "user-123" {
				t.Errorf("expected user-123, got %s", authCtx.UserID)
			}
			if authCtx.SessionID != "session-456" {
				t.Errorf("expected session-456, got %s", authCtx.SessionID)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	_, sessionStore, _, svc := newTestAuthService(provider)

	resp, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.Token == resp.Token {
		t.Error("expected a new token after refresh")
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected the refresh token to rotate")
	}

	// The old refresh token must be dead
	_, err = svc.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	if err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for consumed refresh token, got %v", err)
	}

	if sessionStore.Count() != 1 {
		t.Errorf("expected exactly 1 live session after rotation, got %d", sessionStore.Count())
	}
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	_, _, _, svc := newTestAuthService()

	tests := []struct {
		name         string
		refreshToken string
	}{
		{"empty", ""},
		{"unknown", "never-issued"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RefreshToken(context.Background(), domain.RefreshRequest{RefreshToken: tt.refreshToken})
			if err != domain.ErrTokenInvalid {
				t.Errorf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	_, sessionStore, _, svc := newTestAuthService(provider)

	resp, err := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected no sessions after logout, got %d", sessionStore.Count())
	}

	// Logging out with garbage is a no-op
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthService_LogoutAll(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(domain.ProviderGoogle, googleIdentity())
	_, sessionStore, _, svc := newTestAuthService(provider)

	resp1, _ := svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-1", "", "")
	_, _ = svc.CompleteSignIn(context.Background(), domain.ProviderGoogle, "code-2", "", "")

	if sessionStore.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", sessionStore.Count())
	}

	if err := svc.LogoutAll(context.Background(), resp1.User.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected no sessions after logout all, got %d", sessionStore.Count())
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
