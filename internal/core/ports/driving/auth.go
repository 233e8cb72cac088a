package driving

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// AuthService handles identity sign-in and session lifecycle
type AuthService interface {
	// BeginSignIn returns the provider authorize URL and the CSRF
	// state the caller must persist for the callback
	BeginSignIn(ctx context.Context, provider domain.Provider) (authURL, state string, err error)

	// CompleteSignIn exchanges the callback code, upserts the user and
	// opens a session
	CompleteSignIn(ctx context.Context, provider domain.Provider, code, userAgent, ip string) (*domain.LoginResponse, error)

	// ValidateToken validates a JWT token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// RefreshToken generates a new token from a valid refresh token
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates a session
	Logout(ctx context.Context, token string) error

	// LogoutAll invalidates all sessions for a user
	LogoutAll(ctx context.Context, userID string) error
}
