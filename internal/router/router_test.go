package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"nyaya/internal/domain"
	"nyaya/internal/handler"
	"nyaya/internal/metrics"
	"nyaya/internal/router"
	"nyaya/internal/service"
	"nyaya/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type noBackups struct{}

func (noBackups) Backup(context.Context) (*service.BackupResult, error) {
	return nil, domain.ErrBackupFailed
}

type fixture struct {
	engine  *gin.Engine
	cases   *mocks.MockCaseService
	metrics *metrics.Metrics
}

func setup() fixture {
	gin.SetMode(gin.TestMode)
	caseSvc := new(mocks.MockCaseService)
	m := metrics.New()
	h := router.Handlers{
		Health:    handler.NewHealthHandler(okPinger{}),
		Case:      handler.NewCaseHandler(caseSvc, new(mocks.MockFeedbackService)),
		Session:   handler.NewSessionHandler(new(mocks.MockSessionService)),
		Knowledge: handler.NewKnowledgeHandler(new(mocks.MockKnowledgeService)),
		Stats:     handler.NewStatsHandler(new(mocks.MockStatsService)),
		Admin:     handler.NewAdminHandler(noBackups{}),
	}
	return fixture{
		engine:  router.Setup(h, zap.NewNop(), m, m.Handler(), []string{"http://localhost:3000"}),
		cases:   caseSvc,
		metrics: m,
	}
}

func TestRoutes_Registered(t *testing.T) {
	f := setup()

	want := map[string]bool{
		"GET /healthz":                               true,
		"GET /readyz":                                true,
		"GET /metrics":                               true,
		"POST /api/v1/analyze":                       true,
		"POST /api/v1/cases":                         true,
		"GET /api/v1/cases":                          true,
		"GET /api/v1/cases/export":                   true,
		"GET /api/v1/cases/:id":                      true,
		"GET /api/v1/cases/:id/report":               true,
		"PUT /api/v1/cases/:id/status":               true,
		"POST /api/v1/cases/:id/confirm":             true,
		"POST /api/v1/cases/:id/feedback":            true,
		"POST /api/v1/sessions":                      true,
		"GET /api/v1/sessions/:id":                   true,
		"POST /api/v1/sessions/:id/end":              true,
		"GET /api/v1/knowledge":                      true,
		"GET /api/v1/knowledge/categories/:category": true,
		"POST /api/v1/knowledge":                     true,
		"GET /api/v1/stats":                          true,
		"POST /api/v1/admin/backup":                  true,
	}

	got := map[string]bool{}
	for _, r := range f.engine.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for route := range want {
		assert.True(t, got[route], "missing route %s", route)
	}
}

func TestExportDoesNotHitCaseByID(t *testing.T) {
	f := setup()
	f.cases.On("Export", mock.Anything, domain.ExportFormatCSV, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/export", nil)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.cases.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	f := setup()
	id := uuid.New()
	f.cases.On("GetByID", mock.Anything, id).Return(&domain.Case{ID: id}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/"+id.String(), nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("X-Request-ID", "req-123")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpointExposesHTTPRequests(t *testing.T) {
	f := setup()

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `route="/healthz"`))
}

func TestAdminBackupWithoutStorage(t *testing.T) {
	f := setup()

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/backup", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
