package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
)

// MockKnowledgeRepo is a mock implementation of port.KnowledgeRepository.
type MockKnowledgeRepo struct {
	mock.Mock
}

func (m *MockKnowledgeRepo) Create(ctx context.Context, entry *domain.KnowledgeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKnowledgeRepo) Upsert(ctx context.Context, entry *domain.KnowledgeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockKnowledgeRepo) Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeRepo) ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KnowledgeEntry), args.Error(1)
}
