package port

import "context"

// ClassificationOutput is a ranked zero-shot classification result,
// highest score first.
type ClassificationOutput struct {
	Labels    []string
	Scores    []float64
	ModelUsed string
}

// SentimentOutput is the top sentiment label for a text.
type SentimentOutput struct {
	Label     string
	Score     float64
	ModelUsed string
}

// Classifier scores a text against a set of candidate labels.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (*ClassificationOutput, error)
}

// SentimentService scores the sentiment of a text.
type SentimentService interface {
	Analyze(ctx context.Context, text string) (*SentimentOutput, error)
}

// TextAnalyzer is a provider that serves both classification and sentiment.
type TextAnalyzer interface {
	Classifier
	SentimentService
}
