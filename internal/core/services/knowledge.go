package services

import (
	"context"
	"strings"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driving"
)

// Ensure knowledgeService implements KnowledgeService
var _ driving.KnowledgeService = (*knowledgeService)(nil)

// knowledgeService manages per-user knowledge base entries
type knowledgeService struct {
	store driven.KnowledgeStore
}

// NewKnowledgeService creates a new KnowledgeService
func NewKnowledgeService(store driven.KnowledgeStore) driving.KnowledgeService {
	return &knowledgeService{store: store}
}

func (s *knowledgeService) Create(ctx context.Context, userID string, req driving.CreateKnowledgeRequest) (*domain.KnowledgeItem, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &domain.KnowledgeItem{
		ID:        generateID(),
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Category:  strings.TrimSpace(req.Category),
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *knowledgeService) Get(ctx context.Context, userID, id string) (*domain.KnowledgeItem, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Items are private to their author
	if item.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *knowledgeService) List(ctx context.Context, userID string) ([]*domain.KnowledgeItem, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *knowledgeService) Update(ctx context.Context, userID, id string, req driving.UpdateKnowledgeRequest) (*domain.KnowledgeItem, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		item.Content = strings.TrimSpace(*req.Content)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *knowledgeService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
