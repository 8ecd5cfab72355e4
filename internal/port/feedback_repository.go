package port

import (
	"context"

	"github.com/google/uuid"

	"nyaya/internal/domain"
)

// FeedbackRepository persists user feedback on cases.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Feedback, error)
}
