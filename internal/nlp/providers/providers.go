// Package providers wires the concrete NLP providers into the nlp factory and
// assembles the language and text analysis services from configuration.
package providers

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/nlp/cache"
	"nyaya/internal/nlp/gemini"
	"nyaya/internal/nlp/googletranslate"
	"nyaya/internal/nlp/huggingface"
	"nyaya/internal/port"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderGoogle      = "google"
	ProviderNone        = "none"
)

func init() {
	nlp.RegisterProvider(ProviderHuggingFace, func(cfg *config.ClassifierProviderConfig) (port.TextAnalyzer, error) {
		return huggingface.NewClient(cfg), nil
	})
	nlp.RegisterProvider(ProviderGemini, func(cfg *config.ClassifierProviderConfig) (port.TextAnalyzer, error) {
		return gemini.NewClient(context.Background(), cfg)
	})
}

// BuildAnalyzer creates the fallback chain of configured classification providers.
// With no providers configured every call fails and the pipeline uses its defaults.
func BuildAnalyzer(cfg *config.ClassifierConfig, logger *zap.Logger) (*nlp.FallbackAnalyzer, error) {
	var chain []nlp.NamedAnalyzer
	for _, pc := range cfg.Providers() {
		a, err := nlp.NewTextAnalyzer(&pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s classifier: %w", pc.Provider, err)
		}
		chain = append(chain, nlp.NamedAnalyzer{Name: pc.Provider, Analyzer: a})
	}
	if len(chain) == 0 {
		logger.Warn("no classifier provider configured; classification and sentiment will use defaults")
	}
	return nlp.NewFallbackAnalyzer(chain, logger), nil
}

// BuildLanguageService creates the detection and translation service. When rdb
// is non-nil translations are cached in Redis for cfg.CacheTTL.
func BuildLanguageService(ctx context.Context, cfg *config.LanguageConfig, rdb *redis.Client, logger *zap.Logger) (port.LanguageService, error) {
	var svc port.LanguageService
	switch cfg.Provider {
	case ProviderGoogle:
		if cfg.APIKey == "" {
			logger.Warn("language provider has no api key; detection and translation disabled")
			return nlp.NoopLanguageService{}, nil
		}
		gs, err := googletranslate.NewService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc = gs
	case ProviderNone, "":
		return nlp.NoopLanguageService{}, nil
	default:
		return nil, fmt.Errorf("unknown language provider: %s", cfg.Provider)
	}

	if rdb != nil {
		svc = cache.NewCachedLanguageService(svc, cache.NewRedisCache(rdb, cfg.CacheTTL), logger)
	}
	return svc, nil
}
