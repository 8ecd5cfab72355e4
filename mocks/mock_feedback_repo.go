package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
)

// MockFeedbackRepo is a mock implementation of port.FeedbackRepository.
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFeedbackRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Feedback, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}
