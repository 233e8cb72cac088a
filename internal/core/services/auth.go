package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	providers    map[domain.Provider]driven.IdentityProvider
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
	providers ...driven.IdentityProvider,
) driving.AuthService {
	m := make(map[domain.Provider]driven.IdentityProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		providers:    m,
		tokenTTL:     24 * time.Hour,
	}
}

// BeginSignIn returns the provider authorize URL and the CSRF state
func (s *authService) BeginSignIn(ctx context.Context, provider domain.Provider) (string, string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", "", domain.ErrInvalidInput
	}

	state := generateID()
	return p.AuthURL(state), state, nil
}

// CompleteSignIn exchanges the callback code, upserts the user and
// opens a session
func (s *authService) CompleteSignIn(ctx context.Context, provider domain.Provider, code, userAgent, ip string) (*domain.LoginResponse, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if code == "" {
		return nil, domain.ErrNoCode
	}

	identity, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, userAgent, ip)
}

// upsertUser resolves the identity to an account: first by provider ID,
// then by any known email (so a Google user connecting via GitHub lands
// on the same account), creating a fresh user as the last resort.
func (s *authService) upsertUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	now := time.Now()

	user, err := s.userStore.GetByProviderID(ctx, identity.Provider, identity.ProviderID)
	if err == domain.ErrNotFound {
		user, err = s.userStore.GetByAnyEmail(ctx, identity.Email)
	}
	if err == domain.ErrNotFound {
		user = &domain.User{
			ID:                generateID(),
			Email:             identity.Email,
			Name:              identity.Name,
			AvatarURL:         identity.AvatarURL,
			PreferredProvider: identity.Provider,
			CreatedAt:         now,
		}
	} else if err != nil {
		return nil, err
	}

	switch identity.Provider {
	case domain.ProviderGoogle:
		user.GoogleID = identity.ProviderID
	case domain.ProviderGitHub:
		user.GitHubID = identity.ProviderID
	}

	if user.Name == "" {
		user.Name = identity.Name
	}
	if user.AvatarURL == "" {
		user.AvatarURL = identity.AvatarURL
	}
	user.AddEmail(identity.Email)
	for _, e := range identity.Emails {
		user.AddEmail(e)
	}
	// The primary email is not an "additional" one
	if len(user.AdditionalEmails) > 0 {
		filtered := user.AdditionalEmails[:0]
		for _, e := range user.AdditionalEmails {
			if e != user.Email {
				filtered = append(filtered, e)
			}
		}
		user.AdditionalEmails = filtered
	}
	user.UpdatedAt = now
	user.LastLoginAt = &now

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// openSession generates a token pair and persists the session
func (s *authService) openSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.LoginResponse, error) {
	sessionID := generateID()
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: sessionID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	refreshToken := generateRefreshToken()
	expiresAt := time.Now().Add(s.tokenTTL)

	session := &domain.Session{
		ID:           sessionID,
		UserID:       user.ID,
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
		UserAgent:    userAgent,
		IPAddress:    ip,
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	_ = s.userStore.UpdateLastLogin(ctx, user.ID)

	return &domain.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user.ToSummary(),
	}, nil
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	// Parse and validate JWT
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	// Verify session exists
	session, err := s.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		UserID:    claims.UserID,
		Email:     claims.Email,
		SessionID: claims.SessionID,
	}, nil
}

// RefreshToken generates a new token from a valid refresh token
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	// Find session by refresh token
	session, err := s.sessionStore.GetByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	// Check if session is expired
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// Get user for claims
	user, err := s.userStore.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate: delete old session, open a fresh one
	_ = s.sessionStore.Delete(ctx, session.ID)

	return s.openSession(ctx, user, session.UserAgent, session.IPAddress)
}

// Logout invalidates a session
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil // Already invalid, nothing to do
	}

	return s.sessionStore.Delete(ctx, claims.SessionID)
}

// LogoutAll invalidates all sessions for a user
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessionStore.DeleteByUser(ctx, userID)
}

// Helper functions

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func generateRefreshToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
