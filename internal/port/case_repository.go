package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nyaya/internal/domain"
)

// CaseFilter narrows a case listing.
type CaseFilter struct {
	Category *domain.Category
}

// CaseRepository persists analyzed cases together with their advice and entities.
type CaseRepository interface {
	// Create stores the case, its recommended steps and its entities atomically.
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	List(ctx context.Context, filter CaseFilter, offset, limit int) ([]domain.Case, int, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.Case, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) error
	ConfirmSummary(ctx context.Context, id uuid.UUID) error
}
