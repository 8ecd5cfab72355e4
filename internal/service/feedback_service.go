package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

const defaultFeedbackCategory = "general"

// SubmitFeedbackInput is the DTO for rating a case analysis.
type SubmitFeedbackInput struct {
	CaseID    uuid.UUID
	SessionID *uuid.UUID
	Rating    int
	Text      string
	Category  string
}

// FeedbackService defines the feedback contract.
type FeedbackService interface {
	Submit(ctx context.Context, input *SubmitFeedbackInput) (*domain.Feedback, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Feedback, error)
}

type feedbackService struct {
	feedbackRepo port.FeedbackRepository
	caseRepo     port.CaseRepository
}

// NewFeedbackService creates a new FeedbackService implementation.
func NewFeedbackService(feedbackRepo port.FeedbackRepository, caseRepo port.CaseRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, caseRepo: caseRepo}
}

func (s *feedbackService) Submit(ctx context.Context, input *SubmitFeedbackInput) (*domain.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.caseRepo.GetByID(ctx, input.CaseID); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = defaultFeedbackCategory
	}

	fb := &domain.Feedback{
		ID:               uuid.New(),
		CaseID:           input.CaseID,
		SessionID:        input.SessionID,
		Rating:           input.Rating,
		FeedbackText:     strings.TrimSpace(input.Text),
		FeedbackCategory: category,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *feedbackService) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.Feedback, error) {
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByCase(ctx, caseID)
}
