package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nyaya/internal/domain"
	"nyaya/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, "CASE_NOT_FOUND", "case not found"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrSessionInactive):
		return http.StatusConflict, "SESSION_INACTIVE", "session is no longer active"
	case errors.Is(err, domain.ErrEmptyText):
		return http.StatusBadRequest, "EMPTY_TEXT", "situation text is required"
	case errors.Is(err, domain.ErrTextTooLong):
		return http.StatusRequestEntityTooLarge, "TEXT_TOO_LONG", "situation text exceeds maximum length"
	case errors.Is(err, domain.ErrInvalidCaseStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid case status; allowed: active, closed, archived"
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest, "INVALID_RATING", "rating must be between 1 and 5"
	case errors.Is(err, domain.ErrInvalidLanguage):
		return http.StatusBadRequest, "INVALID_LANGUAGE", "unsupported language; allowed: en, hi, mr"
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "INVALID_CATEGORY", "invalid legal category"
	case errors.Is(err, domain.ErrInvalidKnowledge):
		return http.StatusBadRequest, "INVALID_KNOWLEDGE", "law_section and description are required"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrBackupFailed):
		return http.StatusBadGateway, "BACKUP_FAILED", "case backup failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.GetLogger(c).Error("request failed", zap.String("code", code), zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseIDParam reads a UUID path parameter. Returns false if it is invalid
// (error response already written).
func parseIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseCategoryQuery reads an optional category filter.
func parseCategoryQuery(c *gin.Context) *domain.Category {
	raw := c.Query("category")
	if raw == "" {
		return nil
	}
	cat := domain.Category(raw)
	return &cat
}
