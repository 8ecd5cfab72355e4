package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
)

// MockCaseAnalyzer is a mock implementation of service.CaseAnalyzer.
type MockCaseAnalyzer struct {
	mock.Mock
}

func (m *MockCaseAnalyzer) Analyze(ctx context.Context, rawText string) domain.CaseAnalysis {
	args := m.Called(ctx, rawText)
	return args.Get(0).(domain.CaseAnalysis)
}
