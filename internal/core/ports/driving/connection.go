package driving

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// ConnectionService manages the GitHub account connection lifecycle
type ConnectionService interface {
	// BeginConnect generates CSRF state for the user and returns the
	// GitHub authorize URL together with the flow data the transport
	// layer must hand back on the callback
	BeginConnect(ctx context.Context, userID string) (authURL string, flow *domain.OAuthFlow, err error)

	// CompleteConnect verifies the callback state against the flow,
	// exchanges the code, fetches the GitHub profile and stores the
	// encrypted tokens on the user
	CompleteConnect(ctx context.Context, flow *domain.OAuthFlow, state, code string) error

	// Status reports whether the user is connected and probes the
	// stored token against the GitHub API
	Status(ctx context.Context, userID string) (*domain.ConnectionStatus, error)

	// Disconnect removes the stored connection. Disconnecting a user
	// who was never connected succeeds.
	Disconnect(ctx context.Context, userID string) error

	// AccessToken decrypts and returns the user's stored access token
	// for API calls. Returns domain.ErrNotConnected when no token is
	// stored and domain.ErrDecryptionFailed when it cannot be opened.
	AccessToken(ctx context.Context, userID string) (string, error)
}
