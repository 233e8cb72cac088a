package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure MockKnowledgeStore implements KnowledgeStore
var _ driven.KnowledgeStore = (*MockKnowledgeStore)(nil)

// MockKnowledgeStore is a mock implementation of KnowledgeStore for testing
type MockKnowledgeStore struct {
	mu    sync.RWMutex
	items map[string]*domain.KnowledgeItem
}

// NewMockKnowledgeStore creates a new MockKnowledgeStore
func NewMockKnowledgeStore() *MockKnowledgeStore {
	return &MockKnowledgeStore{
		items: make(map[string]*domain.KnowledgeItem),
	}
}

func (m *MockKnowledgeStore) Save(ctx context.Context, item *domain.KnowledgeItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockKnowledgeStore) Get(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (m *MockKnowledgeStore) ListByUser(ctx context.Context, userID string) ([]*domain.KnowledgeItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.KnowledgeItem
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockKnowledgeStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}
