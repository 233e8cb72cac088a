package driven

import (
	"context"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

// KnowledgeStore handles knowledge base persistence (PostgreSQL)
type KnowledgeStore interface {
	Save(ctx context.Context, item *domain.KnowledgeItem) error
	Get(ctx context.Context, id string) (*domain.KnowledgeItem, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.KnowledgeItem, error)
	Delete(ctx context.Context, id string) error
}
