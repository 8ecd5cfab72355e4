package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/port"
)

const (
	providerName          = "huggingface"
	apiBaseURL            = "https://api-inference.huggingface.co"
	defaultZeroShotModel  = "facebook/bart-large-mnli"
	defaultSentimentModel = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	maxErrorBody          = 500
)

// Client implements port.TextAnalyzer using the Hugging Face Inference API.
type Client struct {
	apiKey         string
	model          string
	sentimentModel string
	baseURL        string
	client         *http.Client
}

var _ port.TextAnalyzer = (*Client)(nil)

// NewClient creates a Hugging Face client. cfg.Endpoint, when set, replaces the
// public inference host.
func NewClient(cfg *config.ClassifierProviderConfig) *Client {
	return newClient(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom host (for testing).
func NewClientWithEndpoint(cfg *config.ClassifierProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ClassifierProviderConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultZeroShotModel
	}
	sentimentModel := cfg.SentimentModel
	if sentimentModel == "" {
		sentimentModel = defaultSentimentModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = apiBaseURL
	}
	return &Client{
		apiKey:         cfg.APIKey,
		model:          model,
		sentimentModel: sentimentModel,
		baseURL:        strings.TrimRight(endpoint, "/"),
		client:         &http.Client{Timeout: timeout},
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// zeroShotResponse is the classic pipeline shape.
type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Client) Classify(ctx context.Context, text string, labels []string) (*port.ClassificationOutput, error) {
	if len(labels) == 0 {
		return nil, errors.New("huggingface: no candidate labels")
	}
	body, err := c.post(ctx, c.model, zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, err
	}

	ranked, err := parseZeroShot(body)
	if err != nil {
		return nil, err
	}
	out := &port.ClassificationOutput{ModelUsed: c.model}
	for _, r := range ranked {
		out.Labels = append(out.Labels, r.Label)
		out.Scores = append(out.Scores, r.Score)
	}
	return out, nil
}

func (c *Client) Analyze(ctx context.Context, text string) (*port.SentimentOutput, error) {
	body, err := c.post(ctx, c.sentimentModel, map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	best, err := parseSentiment(body)
	if err != nil {
		return nil, err
	}
	return &port.SentimentOutput{
		Label:     normalizeSentimentLabel(best.Label),
		Score:     best.Score,
		ModelUsed: c.sentimentModel,
	}, nil
}

func (c *Client) post(ctx context.Context, model string, payload interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling huggingface API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("huggingface API error (status %d): %s", resp.StatusCode, truncate(string(respBody), maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := nlp.ParseRetryAfterHeader(resp.Header.Get("Retry-After"), time.Now())
			return nil, nlp.NewRateLimitError(providerName, baseErr, retryAfter)
		}
		return nil, baseErr
	}
	return respBody, nil
}

// parseZeroShot accepts both the {labels, scores} object and a list of
// {label, score} entries, returning entries ranked by score.
func parseZeroShot(body []byte) ([]labelScore, error) {
	var obj zeroShotResponse
	if err := json.Unmarshal(body, &obj); err == nil && len(obj.Labels) > 0 {
		if len(obj.Labels) != len(obj.Scores) {
			return nil, fmt.Errorf("huggingface: %d labels but %d scores", len(obj.Labels), len(obj.Scores))
		}
		ranked := make([]labelScore, len(obj.Labels))
		for i := range obj.Labels {
			ranked[i] = labelScore{Label: obj.Labels[i], Score: obj.Scores[i]}
		}
		sortByScore(ranked)
		return ranked, nil
	}

	var list []labelScore
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unmarshaling zero-shot response: %w", err)
	}
	if len(list) == 0 {
		return nil, errors.New("huggingface: empty zero-shot response")
	}
	sortByScore(list)
	return list, nil
}

// parseSentiment accepts [[{label, score}]] and [{label, score}] and returns
// the highest scoring entry.
func parseSentiment(body []byte) (labelScore, error) {
	var entries []labelScore
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) > 0 {
			entries = nested[0]
		}
	} else if err := json.Unmarshal(body, &entries); err != nil {
		return labelScore{}, fmt.Errorf("unmarshaling sentiment response: %w", err)
	}

	if len(entries) == 0 {
		return labelScore{}, errors.New("huggingface: empty sentiment response")
	}
	sortByScore(entries)
	return entries[0], nil
}

func sortByScore(entries []labelScore) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
}

// normalizeSentimentLabel upper-cases labels and maps the LABEL_n ids used by
// three-class sentiment models.
func normalizeSentimentLabel(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "LABEL_0", "NEG", "NEGATIVE":
		return "NEGATIVE"
	case "LABEL_1", "NEU", "NEUTRAL":
		return "NEUTRAL"
	case "LABEL_2", "POS", "POSITIVE":
		return "POSITIVE"
	default:
		return strings.ToUpper(strings.TrimSpace(label))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
