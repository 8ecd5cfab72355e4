package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nyaya/internal/domain"
	"nyaya/internal/export"
	"nyaya/internal/service"
)

// CaseHandler handles case analysis and management endpoints.
type CaseHandler struct {
	caseService     service.CaseService
	feedbackService service.FeedbackService
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(caseService service.CaseService, feedbackService service.FeedbackService) *CaseHandler {
	return &CaseHandler{caseService: caseService, feedbackService: feedbackService}
}

type analyzeRequest struct {
	Text      string     `json:"text"`
	SessionID *uuid.UUID `json:"session_id"`
}

// Preview handles POST /api/v1/analyze
func (h *CaseHandler) Preview(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	analysis, err := h.caseService.Preview(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, analysis)
}

// Create handles POST /api/v1/cases
func (h *CaseHandler) Create(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	result, err := h.caseService.Analyze(c.Request.Context(), &service.AnalyzeInput{
		Text:      req.Text,
		SessionID: req.SessionID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// List handles GET /api/v1/cases
func (h *CaseHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	cases, total, err := h.caseService.List(c.Request.Context(), &service.ListCasesInput{
		Category: parseCategoryQuery(c),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	if cases == nil {
		cases = []domain.Case{}
	}
	RespondPaginated(c, cases, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/cases/:id
func (h *CaseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "case")
	if !ok {
		return
	}

	cs, err := h.caseService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cs)
}

// Report handles GET /api/v1/cases/:id/report
func (h *CaseHandler) Report(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "case")
	if !ok {
		return
	}

	report, err := h.caseService.Report(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Body))
}

// UpdateStatus handles PUT /api/v1/cases/:id/status
func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "case")
	if !ok {
		return
	}

	var req struct {
		Status domain.CaseStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	cs, err := h.caseService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cs)
}

// ConfirmSummary handles POST /api/v1/cases/:id/confirm
func (h *CaseHandler) ConfirmSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "case")
	if !ok {
		return
	}

	cs, err := h.caseService.ConfirmSummary(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cs)
}

// SubmitFeedback handles POST /api/v1/cases/:id/feedback
func (h *CaseHandler) SubmitFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "case")
	if !ok {
		return
	}

	var req struct {
		Rating    int        `json:"rating" binding:"required"`
		Text      string     `json:"feedback_text"`
		Category  string     `json:"feedback_category"`
		SessionID *uuid.UUID `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rating is required")
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), &service.SubmitFeedbackInput{
		CaseID:    id,
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Text:      req.Text,
		Category:  req.Category,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, fb)
}

// Export handles GET /api/v1/cases/export
func (h *CaseHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))
	contentType, err := export.ContentType(format)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.caseService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
