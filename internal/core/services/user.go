package services

import (
	"context"
	"strings"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
) driving.UserService {
	return &userService{
		userStore:    userStore,
		sessionStore: sessionStore,
	}
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.userStore.Get(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Update updates a user's profile
func (s *userService) Update(ctx context.Context, id string, req driving.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = name
	}
	if req.PreferredProvider != nil {
		switch *req.PreferredProvider {
		case domain.ProviderGoogle, domain.ProviderGitHub:
			user.PreferredProvider = *req.PreferredProvider
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete deletes a user and their sessions
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return err
	}

	// Invalidate all sessions first
	_ = s.sessionStore.DeleteByUser(ctx, user.ID)

	return s.userStore.Delete(ctx, id)
}
