package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nyaya/internal/domain"
)

// SessionRepository persists user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	IncrementInteractions(ctx context.Context, id uuid.UUID) error
	End(ctx context.Context, id uuid.UUID) error
	// ExpireStartedBefore marks active sessions started before cutoff as expired
	// and returns how many were updated.
	ExpireStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
