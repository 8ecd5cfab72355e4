package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

// Stage names a pipeline step that calls an external provider.
type Stage string

const (
	StageLanguageDetection Stage = "language_detection"
	StageTranslation       Stage = "translation"
	StageClassification    Stage = "classification"
	StageSentiment         Stage = "sentiment"
)

const defaultSentimentLabel = "NEUTRAL"

var errEmptyResponse = errors.New("empty response")

func defaultCategoryResult() domain.CategoryResult {
	return domain.CategoryResult{
		Category:      domain.CategoryGeneral,
		Confidence:    0.5,
		Subcategories: []string{},
	}
}

func defaultSentimentResult() domain.SentimentResult {
	return domain.SentimentResult{Label: defaultSentimentLabel, Score: 0.5}
}

// callWithDeadline runs fn under a bounded deadline. A provider that ignores
// its context still returns control to the caller once the deadline passes.
func callWithDeadline[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				ch <- result{zero, fmt.Errorf("provider panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// toCategoryResult validates a ranked classification and keeps its top entry.
func toCategoryResult(out *port.ClassificationOutput) (domain.CategoryResult, error) {
	if out == nil || len(out.Labels) == 0 || len(out.Scores) == 0 {
		return domain.CategoryResult{}, errEmptyResponse
	}
	score := out.Scores[0]
	if math.IsNaN(score) {
		return domain.CategoryResult{}, fmt.Errorf("score for %q is not a number", out.Labels[0])
	}
	category, ok := ParseCategory(out.Labels[0])
	if !ok {
		return domain.CategoryResult{}, fmt.Errorf("unrecognized category label %q", out.Labels[0])
	}
	return domain.CategoryResult{
		Category:      category,
		Confidence:    Clamp01(score),
		Subcategories: Subcategories(category),
	}, nil
}

// toSentimentResult validates a sentiment reading.
func toSentimentResult(out *port.SentimentOutput) (domain.SentimentResult, error) {
	if out == nil {
		return domain.SentimentResult{}, errEmptyResponse
	}
	label := strings.TrimSpace(out.Label)
	if label == "" {
		return domain.SentimentResult{}, errors.New("empty sentiment label")
	}
	if math.IsNaN(out.Score) {
		return domain.SentimentResult{}, fmt.Errorf("score for %q is not a number", label)
	}
	return domain.SentimentResult{Label: label, Score: Clamp01(out.Score)}, nil
}
