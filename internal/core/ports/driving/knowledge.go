package driving

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// CreateKnowledgeRequest represents a new knowledge base entry
type CreateKnowledgeRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateKnowledgeRequest represents a partial update
type UpdateKnowledgeRequest struct {
	Title    *string  `json:"title,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Category *string  `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// KnowledgeService manages per-user knowledge base entries
type KnowledgeService interface {
	Create(ctx context.Context, userID string, req CreateKnowledgeRequest) (*domain.KnowledgeItem, error)
	Get(ctx context.Context, userID, id string) (*domain.KnowledgeItem, error)
	List(ctx context.Context, userID string) ([]*domain.KnowledgeItem, error)
	Update(ctx context.Context, userID, id string, req UpdateKnowledgeRequest) (*domain.KnowledgeItem, error)
	Delete(ctx context.Context, userID, id string) error
}
