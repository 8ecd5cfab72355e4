package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nyaya/internal/domain"
	"nyaya/internal/knowledge"
	"nyaya/internal/port"
)

// KnowledgeService defines the legal knowledge base contract.
type KnowledgeService interface {
	Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error)
	Add(ctx context.Context, entry *domain.KnowledgeEntry) error
	// SeedDefaults upserts the bundled entries and returns how many were written.
	SeedDefaults(ctx context.Context) (int, error)
}

type knowledgeService struct {
	repo port.KnowledgeRepository
	log  *zap.Logger
}

// NewKnowledgeService creates a new KnowledgeService implementation.
func NewKnowledgeService(repo port.KnowledgeRepository, logger *zap.Logger) KnowledgeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &knowledgeService{repo: repo, log: logger.Named("knowledge_service")}
}

func (s *knowledgeService) Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error) {
	if category != nil && !domain.ValidCategories[*category] {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.Search(ctx, strings.TrimSpace(query), category)
}

func (s *knowledgeService) ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error) {
	if !domain.ValidCategories[category] {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.ListByCategory(ctx, category)
}

func (s *knowledgeService) Add(ctx context.Context, entry *domain.KnowledgeEntry) error {
	if err := knowledge.Validate(entry); err != nil {
		return err
	}
	return s.repo.Create(ctx, entry)
}

func (s *knowledgeService) SeedDefaults(ctx context.Context) (int, error) {
	entries, err := knowledge.Defaults()
	if err != nil {
		return 0, err
	}
	for i := range entries {
		if err := s.repo.Upsert(ctx, &entries[i]); err != nil {
			return i, fmt.Errorf("seeding %q: %w", entries[i].LawSection, err)
		}
	}
	s.log.Info("knowledge base seeded", zap.Int("entries", len(entries)))
	return len(entries), nil
}
