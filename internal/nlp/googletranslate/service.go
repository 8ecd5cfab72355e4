package googletranslate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/port"
)

const providerName = "google_translate"

// Service implements port.LanguageService with the Cloud Translation v2 API.
type Service struct {
	svc     *translate.Service
	timeout time.Duration
}

var _ port.LanguageService = (*Service)(nil)

// NewService creates a translation client. cfg.Endpoint overrides the API host.
func NewService(ctx context.Context, cfg *config.LanguageConfig) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("googletranslate: api key is required")
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("googletranslate.NewService: %w", err)
	}
	return &Service{svc: svc, timeout: timeout}, nil
}

// Detect returns the most confident language code for text.
func (s *Service) Detect(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("googletranslate: empty text")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := s.svc.Detections.List([]string{text}).Context(ctx).Do()
	if err != nil {
		return "", wrapError("detect", err)
	}

	var best *translate.DetectionsResourceItem
	for _, group := range resp.Detections {
		for _, item := range group {
			if item == nil || item.Language == "" || item.Language == "und" {
				continue
			}
			if best == nil || item.Confidence > best.Confidence {
				best = item
			}
		}
	}
	if best == nil {
		return "", errors.New("googletranslate: no language detected")
	}
	return strings.ToLower(best.Language), nil
}

// Translate renders text in targetLanguage. Empty input is returned unchanged.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := s.svc.Translations.List([]string{text}, targetLanguage).Format("text").Context(ctx).Do()
	if err != nil {
		return "", wrapError("translate", err)
	}
	if len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return "", errors.New("googletranslate: empty translation response")
	}
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}

func wrapError(op string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		retryAfter := nlp.ParseRetryAfterHeader(gErr.Header.Get("Retry-After"), time.Now())
		return nlp.NewRateLimitError(providerName, err, retryAfter)
	}
	return fmt.Errorf("googletranslate.%s: %w", op, err)
}
