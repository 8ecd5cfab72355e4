package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

type feedbackRepo struct {
	db *sqlx.DB
}

// NewFeedbackRepo creates a new PostgreSQL-backed FeedbackRepository.
func NewFeedbackRepo(db *sqlx.DB) port.FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	f.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_feedback (id, case_id, session_id, rating, feedback_text, feedback_category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.CaseID, f.SessionID, f.Rating, f.FeedbackText, f.FeedbackCategory, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Create: %w", err)
	}
	return nil
}

func (r *feedbackRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Feedback, error) {
	var items []domain.Feedback
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM user_feedback WHERE case_id = $1 ORDER BY created_at DESC", caseID)
	if err != nil {
		return nil, fmt.Errorf("feedbackRepo.ListByCase: %w", err)
	}
	return items, nil
}
