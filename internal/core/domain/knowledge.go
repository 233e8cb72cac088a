package domain

import (
	"strings"
	"time"
)

// KnowledgeItem is a user-authored guideline the review engine folds
// into its prompts, for example coding standards or architecture notes.
type KnowledgeItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the item is storable.
func (k *KnowledgeItem) Validate() error {
	if strings.TrimSpace(k.Title) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(k.Content) == "" {
		return ErrInvalidInput
	}
	return nil
}
