package services

import (
	"context"
	"testing"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven/mocks"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

func newTestUserService() (*mocks.MockUserStore, *mocks.MockSessionStore, *userService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	svc := NewUserService(userStore, sessionStore).(*userService)
	return userStore, sessionStore, svc
}

func TestUserService_Get(t *testing.T) {
	userStore, _, svc := newTestUserService()
	seedUser(t, userStore, "user-1")

	user, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}

	_, err = svc.Get(context.Background(), "ghost")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_GetByEmail(t *testing.T) {
	userStore, _, svc := newTestUserService()
	seedUser(t, userStore, "user-1")

	user, err := svc.GetByEmail(context.Background(), "  user-1@example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected lookup to normalise the email, got user %s", user.ID)
	}
}

func TestUserService_Update(t *testing.T) {
	userStore, _, svc := newTestUserService()
	seedUser(t, userStore, "user-1")

	name := "  New Name  "
	provider := domain.ProviderGitHub
	user, err := svc.Update(context.Background(), "user-1", driving.UpdateUserRequest{
		Name:              &name,
		PreferredProvider: &provider,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "New Name" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.PreferredProvider != domain.ProviderGitHub {
		t.Errorf("expected preferred provider github, got %s", user.PreferredProvider)
	}
}

func TestUserService_Update_Invalid(t *testing.T) {
	userStore, _, svc := newTestUserService()
	seedUser(t, userStore, "user-1")

	empty := "   "
	_, err := svc.Update(context.Background(), "user-1", driving.UpdateUserRequest{Name: &empty})
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for blank name, got %v", err)
	}

	bogus := domain.Provider("bitbucket")
	_, err = svc.Update(context.Background(), "user-1", driving.UpdateUserRequest{PreferredProvider: &bogus})
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for unknown provider, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	userStore, sessionStore, svc := newTestUserService()
	seedUser(t, userStore, "user-1")
	_ = sessionStore.Save(context.Background(), &domain.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if err := svc.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userStore.Count() != 0 {
		t.Error("expected user removed")
	}
	if sessionStore.Count() != 0 {
		t.Error("expected sessions removed with the user")
	}

	if err := svc.Delete(context.Background(), "user-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
