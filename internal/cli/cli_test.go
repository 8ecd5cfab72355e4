package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nyaya/internal/cli"
	"nyaya/internal/domain"
	"nyaya/internal/service"
	"nyaya/mocks"
)

func sampleAnalysis(text string) domain.CaseAnalysis {
	return domain.CaseAnalysis{
		OriginalText:     text,
		TranslatedText:   text,
		DetectedLanguage: "en",
		CategoryResult:   domain.CategoryResult{Category: domain.CategoryProperty, Confidence: 0.8},
		Sentiment:        domain.SentimentResult{Label: "NEGATIVE", Score: 0.7},
		Advice: domain.AdviceResult{
			RecommendedSteps: []string{"Collect the rent agreement"},
			ApplicableLaws:   []string{"Transfer of Property Act, 1882"},
			UrgencyLevel:     domain.UrgencyMedium,
		},
		Summary: "**LEGAL SITUATION SUMMARY**",
	}
}

func run(t *testing.T, deps cli.Dependencies, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func analyzerDeps(a service.CaseAnalyzer) cli.Dependencies {
	return cli.Dependencies{
		Analyzer: func(context.Context) (service.CaseAnalyzer, error) { return a, nil },
	}
}

func TestAnalyze_ArgsRenderReport(t *testing.T) {
	analyzer := new(mocks.MockCaseAnalyzer)
	analyzer.On("Analyze", mock.Anything, "landlord kept my deposit").Return(sampleAnalysis("landlord kept my deposit"))

	out, err := run(t, analyzerDeps(analyzer), "", "analyze", "landlord", "kept", "my", "deposit")
	require.NoError(t, err)
	assert.Contains(t, out, "LEGAL SITUATION ANALYSIS REPORT")
	assert.Contains(t, out, "1. Collect the rent agreement")
	assert.Contains(t, out, "Transfer of Property Act, 1882")
}

func TestAnalyze_StdinJSON(t *testing.T) {
	analyzer := new(mocks.MockCaseAnalyzer)
	analyzer.On("Analyze", mock.Anything, "मेरे पति तलाक चाहते हैं").Return(sampleAnalysis("मेरे पति तलाक चाहते हैं"))

	out, err := run(t, analyzerDeps(analyzer), "  मेरे पति तलाक चाहते हैं\n", "analyze", "--json")
	require.NoError(t, err)

	var got domain.CaseAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.CategoryProperty, got.CategoryResult.Category)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	analyzer := new(mocks.MockCaseAnalyzer)

	_, err := run(t, analyzerDeps(analyzer), "   ", "analyze")
	assert.EqualError(t, err, "no text to analyze")
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyze_FactoryError(t *testing.T) {
	deps := cli.Dependencies{
		Analyzer: func(context.Context) (service.CaseAnalyzer, error) { return nil, errors.New("bad config") },
	}
	_, err := run(t, deps, "", "analyze", "hello")
	assert.EqualError(t, err, "bad config")
}

type stubSeeder struct {
	n   int
	err error
}

func (s stubSeeder) SeedDefaults(context.Context) (int, error) { return s.n, s.err }

func TestKnowledgeSeed(t *testing.T) {
	released := false
	deps := cli.Dependencies{
		Seeder: func(context.Context) (cli.Seeder, func(), error) {
			return stubSeeder{n: 5}, func() { released = true }, nil
		},
	}

	out, err := run(t, deps, "", "knowledge", "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 5 knowledge entries\n", out)
	assert.True(t, released)
}

func TestKnowledgeSeed_Error(t *testing.T) {
	deps := cli.Dependencies{
		Seeder: func(context.Context) (cli.Seeder, func(), error) {
			return stubSeeder{n: 2, err: errors.New("db down")}, func() {}, nil
		},
	}

	_, err := run(t, deps, "", "knowledge", "seed")
	assert.EqualError(t, err, "seeding knowledge (2 stored): db down")
}
