package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nyaya/internal/handler"
	"nyaya/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Case      *handler.CaseHandler
	Session   *handler.SessionHandler
	Knowledge *handler.KnowledgeHandler
	Stats     *handler.StatsHandler
	Admin     *handler.AdminHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	h Handlers,
	logger *zap.Logger,
	recorder middleware.HTTPRecorder,
	metricsHandler http.Handler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if recorder != nil {
		r.Use(middleware.Metrics(recorder))
	}
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := r.Group("/api/v1")

	v1.POST("/analyze", h.Case.Preview)

	// Cases
	cases := v1.Group("/cases")
	cases.POST("", h.Case.Create)
	cases.GET("", h.Case.List)
	cases.GET("/export", h.Case.Export)
	cases.GET("/:id", h.Case.GetByID)
	cases.GET("/:id/report", h.Case.Report)
	cases.PUT("/:id/status", h.Case.UpdateStatus)
	cases.POST("/:id/confirm", h.Case.ConfirmSummary)
	cases.POST("/:id/feedback", h.Case.SubmitFeedback)

	// Sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", h.Session.Create)
	sessions.GET("/:id", h.Session.Get)
	sessions.POST("/:id/end", h.Session.End)

	// Legal knowledge
	knowledge := v1.Group("/knowledge")
	knowledge.GET("", h.Knowledge.Search)
	knowledge.GET("/categories/:category", h.Knowledge.ListByCategory)
	knowledge.POST("", h.Knowledge.Create)

	v1.GET("/stats", h.Stats.GetStats)

	// Admin
	admin := v1.Group("/admin")
	admin.POST("/backup", h.Admin.Backup)

	return r
}
