package driven

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// UserStore handles user persistence (PostgreSQL)
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by primary email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByAnyEmail retrieves a user whose primary or additional
	// emails include the given address
	GetByAnyEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByProviderID retrieves a user by identity provider account id
	GetByProviderID(ctx context.Context, provider domain.Provider, providerID string) (*domain.User, error)

	// Delete deletes a user
	Delete(ctx context.Context, id string) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, id string) error

	// SaveConnection writes the GitHub connection onto the user row.
	// Username, token hash and IV land in a single statement so a
	// reader never observes a half-written connection.
	SaveConnection(ctx context.Context, userID string, conn *domain.GitHubConnection) error

	// ClearConnection removes all connection fields for the user.
	// Clearing an absent connection is not an error.
	ClearConnection(ctx context.Context, userID string) error
}
