package port

import (
	"context"

	"nyaya/internal/domain"
)

// StatsRepository computes aggregate analytics over stored cases.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
