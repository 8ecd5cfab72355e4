// Package app assembles the shared runtime pieces used by the server and CLI.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nyaya/internal/analysis"
	"nyaya/internal/config"
	"nyaya/internal/nlp/providers"
)

// NewRedisClient returns a client for the translation cache, or nil when no
// address is configured. The connection is checked before it is returned.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// BuildOrchestrator wires the language service and classifier chain into an
// analysis pipeline.
func BuildOrchestrator(
	ctx context.Context,
	cfg *config.Config,
	rdb *redis.Client,
	logger *zap.Logger,
	opts ...analysis.Option,
) (*analysis.Orchestrator, error) {
	lang, err := providers.BuildLanguageService(ctx, &cfg.Language, rdb, logger)
	if err != nil {
		return nil, fmt.Errorf("building language service: %w", err)
	}
	analyzer, err := providers.BuildAnalyzer(&cfg.Classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}
	return analysis.NewOrchestrator(lang, analyzer, analyzer, analysis.Config{
		CanonicalLanguage: cfg.Analysis.CanonicalLanguage,
		CallTimeout:       cfg.Analysis.TimeoutPerCall,
		CandidateLabels:   cfg.Analysis.CandidateLabels,
	}, logger, opts...), nil
}
