package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

type caseRepo struct {
	db *sqlx.DB
}

// NewCaseRepo creates a new PostgreSQL-backed CaseRepository.
func NewCaseRepo(db *sqlx.DB) port.CaseRepository {
	return &caseRepo{db: db}
}

const caseColumns = `id, session_id, original_text, translated_text, detected_language,
	category, confidence_score, subcategories, urgency_level, sentiment_label,
	sentiment_score, summary, applicable_laws, fallbacks, status, is_confirmed,
	created_at, updated_at`

func (r *caseRepo) Create(ctx context.Context, c *domain.Case) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.CaseStatusActive
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("caseRepo.Create begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cases (`+caseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		c.ID, c.SessionID, c.OriginalText, c.TranslatedText, c.DetectedLanguage,
		c.Category, c.ConfidenceScore, c.Subcategories, c.UrgencyLevel, c.SentimentLabel,
		c.SentimentScore, c.Summary, c.ApplicableLaws, c.Fallbacks, c.Status, c.IsConfirmed,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("caseRepo.Create: %w", err)
	}

	for i, step := range c.RecommendedSteps {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_advice (id, case_id, position, recommendation, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), c.ID, i, step, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("caseRepo.Create advice: %w", err)
		}
	}

	for i := range c.Entities {
		e := &c.Entities[i]
		e.ID = uuid.New()
		e.CaseID = c.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_entities (id, case_id, entity_type, entity_value, position)
			VALUES ($1, $2, $3, $4, $5)`,
			e.ID, e.CaseID, e.EntityType, e.EntityValue, e.Position)
		if err != nil {
			return fmt.Errorf("caseRepo.Create entities: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("caseRepo.Create commit: %w", err)
	}
	return nil
}

func (r *caseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	err := r.db.GetContext(ctx, &c, "SELECT "+caseColumns+" FROM cases WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("caseRepo.GetByID: %w", err)
	}

	c.RecommendedSteps = []string{}
	if err := r.db.SelectContext(ctx, &c.RecommendedSteps,
		"SELECT recommendation FROM case_advice WHERE case_id = $1 ORDER BY position", id); err != nil {
		return nil, fmt.Errorf("caseRepo.GetByID advice: %w", err)
	}

	if err := r.db.SelectContext(ctx, &c.Entities,
		`SELECT id, case_id, entity_type, entity_value, position FROM case_entities
		 WHERE case_id = $1 ORDER BY entity_type, position`, id); err != nil {
		return nil, fmt.Errorf("caseRepo.GetByID entities: %w", err)
	}
	return &c, nil
}

func (r *caseRepo) List(ctx context.Context, filter port.CaseFilter, offset, limit int) ([]domain.Case, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Category != nil {
		where = " WHERE category = $1"
		args = append(args, *filter.Category)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cases"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("caseRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM cases%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		caseColumns, where, n+1, n+2)
	var cases []domain.Case
	if err := r.db.SelectContext(ctx, &cases, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("caseRepo.List: %w", err)
	}
	return cases, total, nil
}

func (r *caseRepo) ListSince(ctx context.Context, since time.Time) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.SelectContext(ctx, &cases,
		"SELECT "+caseColumns+" FROM cases WHERE created_at >= $1 ORDER BY created_at",
		since)
	if err != nil {
		return nil, fmt.Errorf("caseRepo.ListSince: %w", err)
	}
	return cases, nil
}

func (r *caseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cases SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("caseRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

func (r *caseRepo) ConfirmSummary(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cases SET is_confirmed = TRUE, updated_at = $1 WHERE id = $2",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("caseRepo.ConfirmSummary: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}
