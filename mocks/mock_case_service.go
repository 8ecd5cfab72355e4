package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
	"nyaya/internal/service"
)

// MockCaseService is a mock implementation of service.CaseService.
type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) Analyze(ctx context.Context, input *service.AnalyzeInput) (*service.AnalyzeResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeResult), args.Error(1)
}

func (m *MockCaseService) Preview(ctx context.Context, text string) (*domain.CaseAnalysis, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseAnalysis), args.Error(1)
}

func (m *MockCaseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) List(ctx context.Context, input *service.ListCasesInput) ([]domain.Case, int, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Case), args.Int(1), args.Error(2)
}

func (m *MockCaseService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) (*domain.Case, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) ConfirmSummary(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) Report(ctx context.Context, id uuid.UUID) (*service.CaseReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseReport), args.Error(1)
}

func (m *MockCaseService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
