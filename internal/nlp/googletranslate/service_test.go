package googletranslate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya/internal/config"
	"nyaya/internal/nlp"
	"nyaya/internal/nlp/googletranslate"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *googletranslate.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := googletranslate.NewService(context.Background(), &config.LanguageConfig{
		APIKey:      "test-key",
		Endpoint:    server.URL + "/",
		TimeoutSecs: 5,
	})
	require.NoError(t, err)
	return svc
}

func TestDetect_PicksMostConfident(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/detect"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"detections":[[{"language":"hi","confidence":0.41,"isReliable":false},{"language":"mr","confidence":0.93,"isReliable":true}]]}}`))
	})

	lang, err := svc.Detect(context.Background(), "माझा पगार थकला आहे")

	require.NoError(t, err)
	assert.Equal(t, "mr", lang)
}

func TestDetect_UndeterminedIsError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"detections":[[{"language":"und","confidence":1}]]}}`))
	})

	_, err := svc.Detect(context.Background(), "12345")

	assert.Error(t, err)
}

func TestDetect_EmptyTextSkipsCall(t *testing.T) {
	called := false
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := svc.Detect(context.Background(), "  ")

	assert.Error(t, err)
	assert.False(t, called)
}

func TestTranslate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("target"))
		assert.Equal(t, "text", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"My landlord&#39;s notice","detectedSourceLanguage":"hi"}]}}`))
	})

	got, err := svc.Translate(context.Background(), "मेरे मकान मालिक का नोटिस", "en")

	require.NoError(t, err)
	assert.Equal(t, "My landlord's notice", got)
}

func TestTranslate_EmptyTextPassesThrough(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected call")
	})

	got, err := svc.Translate(context.Background(), "", "en")

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTranslate_RateLimited(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "45")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"User Rate Limit Exceeded"}}`))
	})

	_, err := svc.Translate(context.Background(), "नमस्ते", "en")

	var rlErr *nlp.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 45*time.Second, rlErr.RetryAfter)
}

func TestTranslate_ServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	})

	_, err := svc.Translate(context.Background(), "नमस्ते", "en")

	require.Error(t, err)
	assert.False(t, nlp.IsRateLimited(err))
	assert.Contains(t, err.Error(), "googletranslate.translate")
}

func TestNewService_RequiresAPIKey(t *testing.T) {
	_, err := googletranslate.NewService(context.Background(), &config.LanguageConfig{})

	assert.Error(t, err)
}
