package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nyaya/internal/service"
)

// SessionHandler handles anonymous session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req struct {
		UserID             *string `json:"user_id"`
		LanguagePreference string  `json:"language_preference"`
	}
	// An empty body starts a default session.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid session request")
			return
		}
	}

	sess, err := h.sessionService.Create(c.Request.Context(), &service.CreateSessionInput{
		UserID:             req.UserID,
		LanguagePreference: req.LanguagePreference,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sess)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "session")
	if !ok {
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// End handles POST /api/v1/sessions/:id/end
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "session")
	if !ok {
		return
	}

	sess, err := h.sessionService.End(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}
