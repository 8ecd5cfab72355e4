package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.uber.org/zap"

	"nyaya/internal/port"
)

// CachedLanguageService serves repeated translations from a cache. Detection
// is always delegated. Cache failures are logged and bypassed.
type CachedLanguageService struct {
	inner port.LanguageService
	cache port.TranslationCache
	log   *zap.Logger
}

var _ port.LanguageService = (*CachedLanguageService)(nil)

// NewCachedLanguageService wraps inner with a read-through translation cache.
func NewCachedLanguageService(inner port.LanguageService, cache port.TranslationCache, logger *zap.Logger) *CachedLanguageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLanguageService{inner: inner, cache: cache, log: logger.Named("translation_cache")}
}

func (s *CachedLanguageService) Detect(ctx context.Context, text string) (string, error) {
	return s.inner.Detect(ctx, text)
}

func (s *CachedLanguageService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	key := Key(text, targetLanguage)

	if cached, found, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("translation cache read failed", zap.Error(err))
	} else if found {
		return cached, nil
	}

	translated, err := s.inner.Translate(ctx, text, targetLanguage)
	if err != nil {
		return "", err
	}
	if translated == "" {
		return translated, nil
	}

	if err := s.cache.Set(ctx, key, translated); err != nil {
		s.log.Warn("translation cache write failed", zap.Error(err))
	}
	return translated, nil
}

// Key derives the cache key for a translation request.
func Key(text, targetLanguage string) string {
	sum := sha256.Sum256([]byte(targetLanguage + "|" + text))
	return hex.EncodeToString(sum[:])
}
