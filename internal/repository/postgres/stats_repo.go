package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

type bucketCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

const casesPerDayQuery = `SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS key, COUNT(*) AS count
FROM cases
WHERE created_at >= NOW() - INTERVAL '30 days'
GROUP BY 1
ORDER BY 1`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats.TotalCases, "SELECT COUNT(*) FROM cases"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats total: %w", err)
	}

	var err error
	if stats.CasesByCategory, err = r.countBy(ctx, "category"); err != nil {
		return nil, err
	}
	if stats.CasesByLanguage, err = r.countBy(ctx, "detected_language"); err != nil {
		return nil, err
	}
	if stats.CasesByUrgency, err = r.countBy(ctx, "urgency_level"); err != nil {
		return nil, err
	}

	var perDay []bucketCount
	if err := r.db.SelectContext(ctx, &perDay, casesPerDayQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats per day: %w", err)
	}
	stats.CasesPerDay = toMap(perDay)

	var avg float64
	if err := r.db.GetContext(ctx, &avg,
		"SELECT COALESCE(AVG(rating), 0)::float8 FROM user_feedback"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats rating: %w", err)
	}
	stats.AverageRating = math.Round(avg*100) / 100

	return &stats, nil
}

// countBy groups cases by one of a fixed set of column names.
func (r *statsRepo) countBy(ctx context.Context, column string) (map[string]int, error) {
	var rows []bucketCount
	query := fmt.Sprintf("SELECT %s AS key, COUNT(*) AS count FROM cases GROUP BY %s", column, column)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats by %s: %w", column, err)
	}
	return toMap(rows), nil
}

func toMap(rows []bucketCount) map[string]int {
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out
}
