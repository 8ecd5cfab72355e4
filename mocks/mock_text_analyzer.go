package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nyaya/internal/port"
)

// MockTextAnalyzer is a mock implementation of port.TextAnalyzer. It also
// satisfies port.Classifier and port.SentimentService on their own.
type MockTextAnalyzer struct {
	mock.Mock
}

func (m *MockTextAnalyzer) Classify(ctx context.Context, text string, labels []string) (*port.ClassificationOutput, error) {
	args := m.Called(ctx, text, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ClassificationOutput), args.Error(1)
}

func (m *MockTextAnalyzer) Analyze(ctx context.Context, text string) (*port.SentimentOutput, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SentimentOutput), args.Error(1)
}
