package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/nlp/providers"
)

func TestDefaultProvidersRegistered(t *testing.T) {
	registered := nlp.RegisteredProviders()

	assert.Contains(t, registered, providers.ProviderHuggingFace)
	assert.Contains(t, registered, providers.ProviderGemini)
}

func TestBuildAnalyzer_NoProviders(t *testing.T) {
	a, err := providers.BuildAnalyzer(&config.ClassifierConfig{}, zap.NewNop())
	require.NoError(t, err)

	_, err = a.Classify(context.Background(), "x", []string{"civil"})
	assert.ErrorIs(t, err, nlp.ErrNoProvider)
}

func TestBuildAnalyzer_UnknownProvider(t *testing.T) {
	_, err := providers.BuildAnalyzer(&config.ClassifierConfig{
		Primary: config.ClassifierProviderConfig{Provider: "watson"},
	}, zap.NewNop())

	assert.ErrorContains(t, err, "unknown classifier provider")
}

func TestBuildAnalyzer_GeminiWithoutKeyFails(t *testing.T) {
	_, err := providers.BuildAnalyzer(&config.ClassifierConfig{
		Primary:   config.ClassifierProviderConfig{Provider: providers.ProviderHuggingFace},
		Secondary: config.ClassifierProviderConfig{Provider: providers.ProviderGemini},
	}, zap.NewNop())

	assert.Error(t, err)
}

func TestBuildLanguageService(t *testing.T) {
	svc, err := providers.BuildLanguageService(context.Background(), &config.LanguageConfig{Provider: "none"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, nlp.NoopLanguageService{}, svc)

	svc, err = providers.BuildLanguageService(context.Background(), &config.LanguageConfig{Provider: "google"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, nlp.NoopLanguageService{}, svc)

	_, err = providers.BuildLanguageService(context.Background(), &config.LanguageConfig{Provider: "deepl"}, nil, zap.NewNop())
	assert.Error(t, err)
}
