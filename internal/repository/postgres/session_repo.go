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

type sessionRepo struct {
	db *sqlx.DB
}

// NewSessionRepo creates a new PostgreSQL-backed SessionRepository.
func NewSessionRepo(db *sqlx.DB) port.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if s.StartTime.IsZero() {
		s.StartTime = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_sessions (id, user_id, language_preference, interaction_count, status, start_time)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.LanguagePreference, s.InteractionCount, s.Status, s.StartTime)
	if err != nil {
		return fmt.Errorf("sessionRepo.Create: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var s domain.Session
	err := r.db.GetContext(ctx, &s, "SELECT * FROM user_sessions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sessionRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) IncrementInteractions(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE user_sessions SET interaction_count = interaction_count + 1 WHERE id = $1",
		id)
	if err != nil {
		return fmt.Errorf("sessionRepo.IncrementInteractions: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) End(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_sessions SET status = $1, end_time = $2
		 WHERE id = $3 AND status = $4`,
		domain.SessionStatusEnded, time.Now().UTC(), id, domain.SessionStatusActive)
	if err != nil {
		return fmt.Errorf("sessionRepo.End: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) ExpireStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_sessions SET status = $1, end_time = $2
		 WHERE status = $3 AND start_time < $4`,
		domain.SessionStatusExpired, time.Now().UTC(), domain.SessionStatusActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sessionRepo.ExpireStartedBefore: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
