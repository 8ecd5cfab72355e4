package port

import (
	"context"

	"nyaya/internal/domain"
)

// KnowledgeRepository persists the legal knowledge base.
type KnowledgeRepository interface {
	Create(ctx context.Context, entry *domain.KnowledgeEntry) error
	// Upsert inserts the entry or refreshes the existing row with the same law section.
	Upsert(ctx context.Context, entry *domain.KnowledgeEntry) error
	Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error)
}
