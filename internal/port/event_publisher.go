package port

import (
	"context"

	"nyaya/internal/domain"
)

// CaseEventPublisher announces stored cases to downstream consumers.
type CaseEventPublisher interface {
	PublishCaseAnalyzed(ctx context.Context, c *domain.Case) error
}
