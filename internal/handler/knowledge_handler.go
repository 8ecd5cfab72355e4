package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nyaya/internal/domain"
	"nyaya/internal/service"
)

// KnowledgeHandler handles legal knowledge base endpoints.
type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

// Search handles GET /api/v1/knowledge?q=&category=
func (h *KnowledgeHandler) Search(c *gin.Context) {
	entries, err := h.knowledgeService.Search(c.Request.Context(), c.Query("q"), parseCategoryQuery(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.KnowledgeEntry{}
	}
	RespondOK(c, entries)
}

// ListByCategory handles GET /api/v1/knowledge/categories/:category
func (h *KnowledgeHandler) ListByCategory(c *gin.Context) {
	entries, err := h.knowledgeService.ListByCategory(c.Request.Context(), domain.Category(c.Param("category")))
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.KnowledgeEntry{}
	}
	RespondOK(c, entries)
}

// Create handles POST /api/v1/knowledge
func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req struct {
		Category      domain.Category `json:"category" binding:"required"`
		Subcategory   string          `json:"subcategory"`
		LawSection    string          `json:"law_section" binding:"required"`
		Description   string          `json:"description" binding:"required"`
		Keywords      string          `json:"keywords"`
		Applicability string          `json:"applicability"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "category, law_section and description are required")
		return
	}

	entry := &domain.KnowledgeEntry{
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		LawSection:    req.LawSection,
		Description:   req.Description,
		Keywords:      req.Keywords,
		Applicability: req.Applicability,
	}
	if err := h.knowledgeService.Add(c.Request.Context(), entry); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, entry)
}
