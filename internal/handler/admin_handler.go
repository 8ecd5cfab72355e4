package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"nyaya/internal/service"
)

// BackupRunner takes an on-demand case backup.
type BackupRunner interface {
	Backup(ctx context.Context) (*service.BackupResult, error)
}

// AdminHandler handles operational endpoints.
type AdminHandler struct {
	backups BackupRunner
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(backups BackupRunner) *AdminHandler {
	return &AdminHandler{backups: backups}
}

// Backup handles POST /api/v1/admin/backup
func (h *AdminHandler) Backup(c *gin.Context) {
	result, err := h.backups.Backup(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
