package huggingface_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/nlp/huggingface"
)

func newTestClient(serverURL string) *huggingface.Client {
	return huggingface.NewClientWithEndpoint(&config.ClassifierProviderConfig{
		Provider:       "huggingface",
		APIKey:         "hf-test",
		Model:          "facebook/bart-large-mnli",
		SentimentModel: "cardiffnlp/twitter-roberta-base-sentiment-latest",
		TimeoutSecs:    5,
	}, serverURL)
}

func TestClassify_ObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))

		var req struct {
			Inputs     string `json:"inputs"`
			Parameters struct {
				CandidateLabels []string `json:"candidate_labels"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "my landlord wants me out", req.Inputs)
		assert.Equal(t, []string{"family", "property"}, req.Parameters.CandidateLabels)

		_, _ = w.Write([]byte(`{"sequence":"my landlord wants me out","labels":["property","family"],"scores":[0.92,0.08]}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Classify(context.Background(), "my landlord wants me out", []string{"family", "property"})

	require.NoError(t, err)
	assert.Equal(t, []string{"property", "family"}, out.Labels)
	assert.Equal(t, []float64{0.92, 0.08}, out.Scores)
	assert.Equal(t, "facebook/bart-large-mnli", out.ModelUsed)
}

func TestClassify_ListResponseIsRanked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"civil","score":0.2},{"label":"consumer","score":0.7}]`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Classify(context.Background(), "refund refused", []string{"civil", "consumer"})

	require.NoError(t, err)
	assert.Equal(t, "consumer", out.Labels[0])
	assert.Equal(t, 0.7, out.Scores[0])
}

func TestClassify_MismatchedLengths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["civil","family"],"scores":[0.9]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Classify(context.Background(), "x", []string{"civil", "family"})

	assert.Error(t, err)
}

func TestClassify_NoLabels(t *testing.T) {
	_, err := newTestClient("http://unused").Classify(context.Background(), "x", nil)

	assert.Error(t, err)
}

func TestAnalyze_NestedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/cardiffnlp/twitter-roberta-base-sentiment-latest", r.URL.Path)
		_, _ = w.Write([]byte(`[[{"label":"neutral","score":0.15},{"label":"negative","score":0.8},{"label":"positive","score":0.05}]]`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Analyze(context.Background(), "they threatened me")

	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", out.Label)
	assert.Equal(t, 0.8, out.Score)
}

func TestAnalyze_FlatResponseWithLabelIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"LABEL_2","score":0.6},{"label":"LABEL_0","score":0.4}]`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Analyze(context.Background(), "thank you")

	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", out.Label)
}

func TestAnalyze_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[]]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), "x")

	assert.Error(t, err)
}

func TestRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "20")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Rate limit reached"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), "x")

	var rlErr *nlp.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "huggingface", rlErr.Provider)
	assert.Equal(t, 20*time.Second, rlErr.RetryAfter)
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Classify(context.Background(), "x", []string{"civil"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.False(t, nlp.IsRateLimited(err))
}

func TestServerError_BodyIsTruncatedOnRuneBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("x" + strings.Repeat("न", 200)))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Classify(context.Background(), "x", []string{"civil"})

	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "x"+strings.Repeat("न", 166)+"...")
}
