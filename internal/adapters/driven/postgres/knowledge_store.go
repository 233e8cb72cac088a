package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore implements driven.KnowledgeStore using PostgreSQL
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

const knowledgeColumns = `id, user_id, title, content, category, tags, created_at, updated_at`

// Save creates or updates a knowledge item
func (s *KnowledgeStore) Save(ctx context.Context, item *domain.KnowledgeItem) error {
	query := `
		INSERT INTO knowledge_items (` + knowledgeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.Title,
		item.Content,
		item.Category,
		pq.Array(tags),
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

// Get retrieves a knowledge item by ID
func (s *KnowledgeStore) Get(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	query := `SELECT ` + knowledgeColumns + ` FROM knowledge_items WHERE id = $1`

	item, err := scanKnowledgeItem(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByUser lists a user's knowledge items, newest first
func (s *KnowledgeStore) ListByUser(ctx context.Context, userID string) ([]*domain.KnowledgeItem, error) {
	query := `SELECT ` + knowledgeColumns + ` FROM knowledge_items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.KnowledgeItem
	for rows.Next() {
		item, err := scanKnowledgeItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Delete deletes a knowledge item
func (s *KnowledgeStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func scanKnowledgeItem(row rowScanner) (*domain.KnowledgeItem, error) {
	var item domain.KnowledgeItem
	var tags pq.StringArray

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Content,
		&item.Category,
		&tags,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Tags = tags
	return &item, nil
}
