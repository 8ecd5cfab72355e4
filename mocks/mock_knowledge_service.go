package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
)

// MockKnowledgeService is a mock implementation of service.KnowledgeService.
type MockKnowledgeService struct {
	mock.Mock
}

func (m *MockKnowledgeService) Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeService) ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeService) Add(ctx context.Context, entry *domain.KnowledgeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKnowledgeService) SeedDefaults(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
