package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
)

// MockCaseEventPublisher is a mock implementation of port.CaseEventPublisher.
type MockCaseEventPublisher struct {
	mock.Mock
}

func (m *MockCaseEventPublisher) PublishCaseAnalyzed(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
