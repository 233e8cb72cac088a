package driving

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// UpdateUserRequest represents a profile update
type UpdateUserRequest struct {
	Name              *string          `json:"name,omitempty"`
	PreferredProvider *domain.Provider `json:"preferred_provider,omitempty"`
}

// UserService manages user accounts
type UserService interface {
	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates a user's profile
	Update(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error)

	// Delete deletes a user and their sessions
	Delete(ctx context.Context, id string) error
}
