package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/port"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-1.5-flash"
)

// Generator produces a JSON completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client implements port.TextAnalyzer by prompting a Gemini model for a JSON verdict.
type Client struct {
	gen   Generator
	model string
}

var _ port.TextAnalyzer = (*Client)(nil)

// NewClient dials the Gemini API.
func NewClient(ctx context.Context, cfg *config.ClassifierProviderConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	gc, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini.NewClient: %w", err)
	}

	m := gc.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0)
	return NewClientWithGenerator(&genaiGenerator{model: m}, model), nil
}

// NewClientWithGenerator builds a client around an arbitrary generator (for testing).
func NewClientWithGenerator(gen Generator, model string) *Client {
	return &Client{gen: gen, model: model}
}

type classificationVerdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type sentimentVerdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Client) Classify(ctx context.Context, text string, labels []string) (*port.ClassificationOutput, error) {
	raw, err := c.gen.Generate(ctx, classificationPrompt(text, labels))
	if err != nil {
		return nil, wrapError(err)
	}

	var v classificationVerdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("parsing gemini classification: %w (raw: %s)", err, truncate(raw, 200))
	}
	label, ok := matchLabel(v.Label, labels)
	if !ok {
		return nil, fmt.Errorf("gemini returned label %q outside the candidates", v.Label)
	}
	if math.IsNaN(v.Confidence) {
		return nil, errors.New("gemini returned a non-numeric confidence")
	}
	return &port.ClassificationOutput{
		Labels:    []string{label},
		Scores:    []float64{v.Confidence},
		ModelUsed: c.model,
	}, nil
}

func (c *Client) Analyze(ctx context.Context, text string) (*port.SentimentOutput, error) {
	raw, err := c.gen.Generate(ctx, sentimentPrompt(text))
	if err != nil {
		return nil, wrapError(err)
	}

	var v sentimentVerdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("parsing gemini sentiment: %w (raw: %s)", err, truncate(raw, 200))
	}
	label := strings.ToUpper(strings.TrimSpace(v.Label))
	switch label {
	case "POSITIVE", "NEGATIVE", "NEUTRAL":
	default:
		return nil, fmt.Errorf("gemini returned unknown sentiment %q", v.Label)
	}
	return &port.SentimentOutput{Label: label, Score: v.Score, ModelUsed: c.model}, nil
}

func classificationPrompt(text string, labels []string) string {
	return fmt.Sprintf(`You classify legal situations described by people in India.
Choose exactly one category from this list: %s.
Respond only with JSON of the form {"label": "<category>", "confidence": <number between 0 and 1>}.

Situation:
%s`, strings.Join(labels, ", "), text)
}

func sentimentPrompt(text string) string {
	return fmt.Sprintf(`Rate the overall sentiment of the following text as POSITIVE, NEGATIVE or NEUTRAL.
Respond only with JSON of the form {"label": "<POSITIVE|NEGATIVE|NEUTRAL>", "score": <number between 0 and 1>}.

Text:
%s`, text)
}

func matchLabel(got string, candidates []string) (string, bool) {
	got = strings.TrimSpace(got)
	for _, c := range candidates {
		if strings.EqualFold(got, c) {
			return c, true
		}
	}
	return "", false
}

// wrapError maps quota exhaustion to a RateLimitError.
func wrapError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPCode() == http.StatusTooManyRequests || apiErr.GRPCStatus().Code() == codes.ResourceExhausted {
			return nlp.NewRateLimitError(providerName, err, 0)
		}
	}
	return fmt.Errorf("calling gemini API: %w", err)
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

// genaiGenerator adapts a genai model to Generator.
type genaiGenerator struct {
	model *genai.GenerativeModel
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from API: no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("empty response from API: no text parts")
	}
	return b.String(), nil
}
