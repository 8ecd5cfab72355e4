package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"nyaya/internal/domain"
	"nyaya/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrCaseNotFound, http.StatusNotFound, "CASE_NOT_FOUND"},
		{domain.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrSessionInactive, http.StatusConflict, "SESSION_INACTIVE"},
		{domain.ErrEmptyText, http.StatusBadRequest, "EMPTY_TEXT"},
		{domain.ErrTextTooLong, http.StatusRequestEntityTooLarge, "TEXT_TOO_LONG"},
		{domain.ErrInvalidCaseStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{domain.ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
		{domain.ErrInvalidLanguage, http.StatusBadRequest, "INVALID_LANGUAGE"},
		{domain.ErrInvalidCategory, http.StatusBadRequest, "INVALID_CATEGORY"},
		{domain.ErrInvalidKnowledge, http.StatusBadRequest, "INVALID_KNOWLEDGE"},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{fmt.Errorf("%w: no bucket", domain.ErrBackupFailed), http.StatusBadGateway, "BACKUP_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}
