package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLanguageService is a mock implementation of port.LanguageService.
type MockLanguageService struct {
	mock.Mock
}

func (m *MockLanguageService) Detect(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockLanguageService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	args := m.Called(ctx, text, targetLanguage)
	return args.String(0), args.Error(1)
}

// MockTranslationCache is a mock implementation of port.TranslationCache.
type MockTranslationCache struct {
	mock.Mock
}

func (m *MockTranslationCache) Get(ctx context.Context, key string) (value string, found bool, err error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockTranslationCache) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
