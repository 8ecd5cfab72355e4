package port

import "context"

// LanguageService detects the language of a text and translates it.
type LanguageService interface {
	// Detect returns an ISO-639-1 language code such as "en", "hi" or "mr".
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// TranslationCache stores translated text keyed by an opaque cache key.
type TranslationCache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
