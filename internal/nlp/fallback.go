package nlp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"nyaya/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// NamedAnalyzer pairs a provider with the name used in logs and errors.
type NamedAnalyzer struct {
	Name     string
	Analyzer port.TextAnalyzer
}

// FallbackAnalyzer tries providers in order, skipping those whose rate-limit
// circuit is open. Classification and sentiment share a circuit per provider.
type FallbackAnalyzer struct {
	analyzers []NamedAnalyzer
	circuits  []*circuitState
	log       *zap.Logger
	now       func() time.Time
}

var _ port.TextAnalyzer = (*FallbackAnalyzer)(nil)

// NewFallbackAnalyzer creates a FallbackAnalyzer over an ordered provider list.
func NewFallbackAnalyzer(analyzers []NamedAnalyzer, logger *zap.Logger) *FallbackAnalyzer {
	circuits := make([]*circuitState, len(analyzers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackAnalyzer{
		analyzers: analyzers,
		circuits:  circuits,
		log:       logger.Named("nlp.fallback"),
		now:       time.Now,
	}
}

func (f *FallbackAnalyzer) Classify(ctx context.Context, text string, labels []string) (*port.ClassificationOutput, error) {
	return tryEach(ctx, f, "classify", func(ctx context.Context, a port.TextAnalyzer) (*port.ClassificationOutput, error) {
		return a.Classify(ctx, text, labels)
	})
}

func (f *FallbackAnalyzer) Analyze(ctx context.Context, text string) (*port.SentimentOutput, error) {
	return tryEach(ctx, f, "sentiment", func(ctx context.Context, a port.TextAnalyzer) (*port.SentimentOutput, error) {
		return a.Analyze(ctx, text)
	})
}

func tryEach[T any](ctx context.Context, f *FallbackAnalyzer, op string, call func(context.Context, port.TextAnalyzer) (*T, error)) (*T, error) {
	if len(f.analyzers) == 0 {
		return nil, ErrNoProvider
	}

	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, a := range f.analyzers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.log.Debug("skipping provider with open circuit",
				zap.String("provider", a.Name), zap.String("op", op), zap.Time("reset_at", resetAt))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := call(ctx, a.Analyzer)
		if err == nil {
			return out, nil
		}

		f.log.Warn("provider failed", zap.String("provider", a.Name), zap.String("op", op), zap.Error(err))
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", errors.New("all providers rate limited"), int(retryAfter.Seconds()))
	}
	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}
