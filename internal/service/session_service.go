package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

// CreateSessionInput is the DTO for starting a session.
type CreateSessionInput struct {
	UserID             *string
	LanguagePreference string
}

// SessionService defines the anonymous session contract.
type SessionService interface {
	Create(ctx context.Context, input *CreateSessionInput) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	End(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Touch(ctx context.Context, id uuid.UUID) error
	ExpireOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}

type sessionService struct {
	sessionRepo port.SessionRepository
	now         func() time.Time
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(sessionRepo port.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo, now: time.Now}
}

func (s *sessionService) Create(ctx context.Context, input *CreateSessionInput) (*domain.Session, error) {
	lang := strings.ToLower(strings.TrimSpace(input.LanguagePreference))
	if lang == "" {
		lang = domain.LanguageEnglish
	}
	if !domain.SupportedLanguages[lang] {
		return nil, domain.ErrInvalidLanguage
	}

	var userID *string
	if input.UserID != nil && strings.TrimSpace(*input.UserID) != "" {
		trimmed := strings.TrimSpace(*input.UserID)
		userID = &trimmed
	}

	sess := &domain.Session{
		ID:                 uuid.New(),
		UserID:             userID,
		LanguagePreference: lang,
		Status:             domain.SessionStatusActive,
		StartTime:          s.now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *sessionService) End(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if err := s.sessionRepo.End(ctx, id); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *sessionService) Touch(ctx context.Context, id uuid.UUID) error {
	return s.sessionRepo.IncrementInteractions(ctx, id)
}

func (s *sessionService) ExpireOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.sessionRepo.ExpireStartedBefore(ctx, s.now().UTC().Add(-maxAge))
}
