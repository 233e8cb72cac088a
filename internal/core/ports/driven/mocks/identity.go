package mocks

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure MockIdentityProvider implements IdentityProvider
var _ driven.IdentityProvider = (*MockIdentityProvider)(nil)

// MockIdentityProvider is a mock implementation of IdentityProvider for testing
type MockIdentityProvider struct {
	Provider    domain.Provider
	Identity    *domain.Identity
	ExchangeErr error
}

// NewMockIdentityProvider creates a provider returning the given identity
func NewMockIdentityProvider(provider domain.Provider, identity *domain.Identity) *MockIdentityProvider {
	return &MockIdentityProvider{Provider: provider, Identity: identity}
}

func (m *MockIdentityProvider) Name() domain.Provider {
	return m.Provider
}

func (m *MockIdentityProvider) AuthURL(state string) string {
	return "https://" + string(m.Provider) + ".test/authorize?state=" + state
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.Identity, nil
}
