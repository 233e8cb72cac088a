package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Error injection
	SaveErr           error
	SaveConnectionErr error
	ClearConnErr      error
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) GetByAnyEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.KnowsEmail(email) {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) GetByProviderID(ctx context.Context, provider domain.Provider, providerID string) (*domain.User, error) {
	if providerID == "" {
		return nil, domain.ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		switch provider {
		case domain.ProviderGoogle:
			if user.GoogleID == providerID {
				return user, nil
			}
		case domain.ProviderGitHub:
			if user.GitHubID == providerID {
				return user, nil
			}
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (m *MockUserStore) SaveConnection(ctx context.Context, userID string, conn *domain.GitHubConnection) error {
	if m.SaveConnectionErr != nil {
		return m.SaveConnectionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	c := *conn
	if c.Connected && c.ConnectedAt == nil {
		now := time.Now()
		c.ConnectedAt = &now
	}
	user.GitHub = &c
	user.UpdatedAt = time.Now()
	return nil
}

func (m *MockUserStore) ClearConnection(ctx context.Context, userID string) error {
	if m.ClearConnErr != nil {
		return m.ClearConnErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.GitHub = nil
	user.UpdatedAt = time.Now()
	return nil
}

// Helper methods for testing

func (m *MockUserStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]*domain.User)
}

func (m *MockUserStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
