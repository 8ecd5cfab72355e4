package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
	"nyaya/internal/handler"
	"nyaya/internal/service"
	"nyaya/mocks"
)

func TestSessionHandler_Create(t *testing.T) {
	svc := new(mocks.MockSessionService)
	h := handler.NewSessionHandler(svc)
	svc.On("Create", mock.Anything, &service.CreateSessionInput{LanguagePreference: "hi"}).
		Return(&domain.Session{ID: uuid.New(), LanguagePreference: "hi", Status: domain.SessionStatusActive}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/sessions", map[string]string{"language_preference": "hi"})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Create_EmptyBody(t *testing.T) {
	svc := new(mocks.MockSessionService)
	h := handler.NewSessionHandler(svc)
	svc.On("Create", mock.Anything, &service.CreateSessionInput{}).
		Return(&domain.Session{ID: uuid.New(), LanguagePreference: "en"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/sessions", nil)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSessionHandler_Create_InvalidLanguage(t *testing.T) {
	svc := new(mocks.MockSessionService)
	h := handler.NewSessionHandler(svc)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidLanguage)

	c, w := newContext(http.MethodPost, "/api/v1/sessions", map[string]string{"language_preference": "fr"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_LANGUAGE", decode(t, w).Error.Code)
}

func TestSessionHandler_GetAndEnd(t *testing.T) {
	svc := new(mocks.MockSessionService)
	h := handler.NewSessionHandler(svc)
	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(&domain.Session{ID: id}, nil)
	svc.On("End", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	c, w := newContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.End(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
