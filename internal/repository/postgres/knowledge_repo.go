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

type knowledgeRepo struct {
	db *sqlx.DB
}

// NewKnowledgeRepo creates a new PostgreSQL-backed KnowledgeRepository.
func NewKnowledgeRepo(db *sqlx.DB) port.KnowledgeRepository {
	return &knowledgeRepo{db: db}
}

func (r *knowledgeRepo) Create(ctx context.Context, e *domain.KnowledgeEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO legal_knowledge (id, category, subcategory, law_section, description, keywords, applicability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Category, e.Subcategory, e.LawSection, e.Description, e.Keywords, e.Applicability,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("knowledgeRepo.Create: %w", err)
	}
	return nil
}

func (r *knowledgeRepo) Upsert(ctx context.Context, e *domain.KnowledgeEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	err := r.db.GetContext(ctx, &e.ID,
		`INSERT INTO legal_knowledge (id, category, subcategory, law_section, description, keywords, applicability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (law_section) DO UPDATE SET
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			description = EXCLUDED.description,
			keywords = EXCLUDED.keywords,
			applicability = EXCLUDED.applicability,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		e.ID, e.Category, e.Subcategory, e.LawSection, e.Description, e.Keywords, e.Applicability,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("knowledgeRepo.Upsert: %w", err)
	}
	return nil
}

func (r *knowledgeRepo) Search(ctx context.Context, query string, category *domain.Category) ([]domain.KnowledgeEntry, error) {
	pattern := "%" + query + "%"
	sqlQuery := `SELECT * FROM legal_knowledge
		WHERE (keywords ILIKE $1 OR description ILIKE $1 OR law_section ILIKE $1)`
	args := []interface{}{pattern}
	if category != nil {
		sqlQuery += " AND category = $2"
		args = append(args, *category)
	}
	sqlQuery += " ORDER BY category, law_section"

	var entries []domain.KnowledgeEntry
	if err := r.db.SelectContext(ctx, &entries, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("knowledgeRepo.Search: %w", err)
	}
	return entries, nil
}

func (r *knowledgeRepo) ListByCategory(ctx context.Context, category domain.Category) ([]domain.KnowledgeEntry, error) {
	var entries []domain.KnowledgeEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM legal_knowledge WHERE category = $1 ORDER BY law_section", category)
	if err != nil {
		return nil, fmt.Errorf("knowledgeRepo.ListByCategory: %w", err)
	}
	return entries, nil
}
