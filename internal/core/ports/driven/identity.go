package driven

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// IdentityProvider performs the OAuth sign-in flow for one provider
// (Google or GitHub) and normalises the resulting profile.
type IdentityProvider interface {
	Name() domain.Provider

	// AuthURL returns the provider authorize URL for the given state
	AuthURL(state string) string

	// Exchange trades the callback code for a normalised identity
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}
