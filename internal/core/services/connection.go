package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Ensure connectionService implements ConnectionService
var _ driving.ConnectionService = (*connectionService)(nil)

// connectionService links GitHub accounts to users and manages the
// encrypted token lifecycle.
type connectionService struct {
	userStore driven.UserStore
	oauth     driven.OAuthClient
	github    driven.GitHubClient
	cipher    driven.TokenCipher
	logger    *slog.Logger
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	userStore driven.UserStore,
	oauth driven.OAuthClient,
	github driven.GitHubClient,
	cipher driven.TokenCipher,
	logger *slog.Logger,
) driving.ConnectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &connectionService{
		userStore: userStore,
		oauth:     oauth,
		github:    github,
		cipher:    cipher,
		logger:    logger,
	}
}

// BeginConnect generates CSRF state and the GitHub authorize URL
func (s *connectionService) BeginConnect(ctx context.Context, userID string) (string, *domain.OAuthFlow, error) {
	if userID == "" {
		return "", nil, domain.ErrInvalidInput
	}

	// The user must exist before we send them to GitHub
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, err
	}

	flow := &domain.OAuthFlow{
		State:  generateID(),
		UserID: userID,
		Email:  user.Email,
	}
	return s.oauth.BuildAuthURL(flow.State), flow, nil
}

// CompleteConnect verifies state, exchanges the code, fetches the
// GitHub profile and stores the encrypted tokens on the user. All
// connection fields are written in one statement so a failed callback
// never leaves a partial link.
func (s *connectionService) CompleteConnect(ctx context.Context, flow *domain.OAuthFlow, state, code string) error {
	if flow == nil || flow.UserID == "" {
		return domain.ErrMissingOAuthData
	}
	if code == "" {
		return domain.ErrNoCode
	}
	// Reject both a wrong state and a missing one
	if state == "" || state != flow.State {
		return domain.ErrStateMismatch
	}

	exchange, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	ghUser, err := s.github.GetUser(ctx, exchange.AccessToken)
	if err != nil {
		return err
	}

	// Email is best-effort: profiles with hidden emails still connect
	email, err := s.github.GetPrimaryEmail(ctx, exchange.AccessToken)
	if err != nil {
		email = ""
	}

	accessToken, err := s.cipher.Encrypt(exchange.AccessToken)
	if err != nil {
		return err
	}

	var refreshToken domain.EncryptedToken
	if exchange.RefreshToken != "" {
		refreshToken, err = s.cipher.Encrypt(exchange.RefreshToken)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	conn := &domain.GitHubConnection{
		Username:         ghUser.Login,
		Email:            email,
		AccessTokenHash:  accessToken.Hash,
		AccessTokenIV:    accessToken.IV,
		RefreshTokenHash: refreshToken.Hash,
		RefreshTokenIV:   refreshToken.IV,
		Connected:        true,
		ConnectedAt:      &now,
	}

	err = s.userStore.SaveConnection(ctx, flow.UserID, conn)
	if err == domain.ErrUserNotFound && flow.Email != "" {
		// The ID did not resolve; fall back to the email the flow was
		// started with
		user, lookupErr := s.userStore.GetByEmail(ctx, flow.Email)
		if lookupErr != nil {
			return err
		}
		s.logger.Warn("github connect resolved user by email fallback",
			"user_id", flow.UserID, "resolved_id", user.ID)
		return s.userStore.SaveConnection(ctx, user.ID, conn)
	}
	return err
}

// Status reports whether the user is connected and probes the stored
// token against the GitHub API. A dead token with a stored refresh
// token gets one silent refresh attempt before being reported invalid.
func (s *connectionService) Status(ctx context.Context, userID string) (*domain.ConnectionStatus, error) {
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	conn := user.GitHub
	if conn == nil || !conn.HasToken() {
		return &domain.ConnectionStatus{IsConnected: false}, nil
	}

	// A stored token with connected=false is a stale flag, not a
	// disconnect: probe it and heal the flag if it still works
	status := &domain.ConnectionStatus{
		IsConnected: conn.Connected,
		Username:    &conn.Username,
	}

	token, err := s.cipher.Decrypt(domain.EncryptedToken{
		Hash: conn.AccessTokenHash,
		IV:   conn.AccessTokenIV,
	})
	if err != nil {
		// The stored record stays put; only an explicit disconnect
		// removes it. The user is told to reconnect instead.
		status.TokenError = "decryption failed"
		return status, nil
	}

	_, probeErr := s.github.GetUser(ctx, token)
	if probeErr == nil {
		status.TokenValid = true
		status.IsConnected = true
		if !conn.Connected {
			healed := *conn
			healed.Connected = true
			_ = s.userStore.SaveConnection(ctx, userID, &healed)
		}
		return status, nil
	}
	if !errors.Is(probeErr, domain.ErrUnauthorized) {
		// Network or GitHub outage, not a verdict on the token
		status.TokenError = "github api unreachable"
		return status, nil
	}

	// Token rejected: try the refresh path if we have one
	if conn.HasRefreshToken() {
		if refreshed := s.tryRefresh(ctx, userID, conn); refreshed {
			status.TokenValid = true
			status.IsConnected = true
			return status, nil
		}
	}

	status.TokenError = rejectionMessage(probeErr)
	return status, nil
}

// rejectionMessage prefers the provider's own wording, for example
// "Bad credentials", over the generic fallback.
func rejectionMessage(err error) string {
	var provider *domain.ProviderError
	if errors.As(err, &provider) && provider.Message != "" {
		return provider.Message
	}
	return "access token rejected by github, reconnect required"
}

// tryRefresh exchanges the stored refresh token for new tokens and
// re-stores them. Returns false on any failure; Status then reports
// the token as invalid.
func (s *connectionService) tryRefresh(ctx context.Context, userID string, conn *domain.GitHubConnection) bool {
	refreshPlain, err := s.cipher.Decrypt(domain.EncryptedToken{
		Hash: conn.RefreshTokenHash,
		IV:   conn.RefreshTokenIV,
	})
	if err != nil {
		return false
	}

	exchange, err := s.oauth.RefreshToken(ctx, refreshPlain)
	if err != nil {
		return false
	}

	accessToken, err := s.cipher.Encrypt(exchange.AccessToken)
	if err != nil {
		return false
	}

	newConn := *conn
	newConn.AccessTokenHash = accessToken.Hash
	newConn.AccessTokenIV = accessToken.IV
	newConn.Connected = true

	// Providers may rotate the refresh token on use
	if exchange.RefreshToken != "" {
		refreshToken, err := s.cipher.Encrypt(exchange.RefreshToken)
		if err != nil {
			return false
		}
		newConn.RefreshTokenHash = refreshToken.Hash
		newConn.RefreshTokenIV = refreshToken.IV
	}

	return s.userStore.SaveConnection(ctx, userID, &newConn) == nil
}

// Disconnect removes the stored connection. Idempotent.
func (s *connectionService) Disconnect(ctx context.Context, userID string) error {
	err := s.userStore.ClearConnection(ctx, userID)
	if err == domain.ErrUserNotFound || err == domain.ErrNotFound {
		return domain.ErrUserNotFound
	}
	return err
}

// AccessToken decrypts and returns the user's stored access token
func (s *connectionService) AccessToken(ctx context.Context, userID string) (string, error) {
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	// The connected flag is advisory; a stored token is what matters
	conn := user.GitHub
	if conn == nil || !conn.HasToken() {
		return "", domain.ErrNotConnected
	}

	token, err := s.cipher.Decrypt(domain.EncryptedToken{
		Hash: conn.AccessTokenHash,
		IV:   conn.AccessTokenIV,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
