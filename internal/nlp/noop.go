package nlp

import (
	"context"

	"nyaya/internal/port"
)

// NoopLanguageService is used when no language provider is configured. Every
// call fails, so the pipeline assumes the canonical language and keeps the
// original text.
type NoopLanguageService struct{}

var _ port.LanguageService = NoopLanguageService{}

func (NoopLanguageService) Detect(context.Context, string) (string, error) {
	return "", ErrNoProvider
}

func (NoopLanguageService) Translate(context.Context, string, string) (string, error) {
	return "", ErrNoProvider
}
