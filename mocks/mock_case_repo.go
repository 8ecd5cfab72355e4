package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

// MockCaseRepo is a mock implementation of port.CaseRepository.
type MockCaseRepo struct {
	mock.Mock
}

func (m *MockCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseRepo) List(ctx context.Context, filter port.CaseFilter, offset, limit int) ([]domain.Case, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Case), args.Int(1), args.Error(2)
}

func (m *MockCaseRepo) ListSince(ctx context.Context, since time.Time) ([]domain.Case, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCaseRepo) ConfirmSummary(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
