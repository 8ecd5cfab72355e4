package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nyaya/internal/domain"
	"nyaya/internal/export"
	"nyaya/internal/port"
)

// CaseAnalyzer runs the analysis pipeline over a free-text description.
type CaseAnalyzer interface {
	Analyze(ctx context.Context, rawText string) domain.CaseAnalysis
}

// AnalysisRecorder records completed analyses.
type AnalysisRecorder interface {
	ObserveAnalysis(category domain.Category, urgency domain.UrgencyLevel, elapsed time.Duration)
}

// AnalyzeInput is the DTO for analyzing and storing a situation.
type AnalyzeInput struct {
	Text      string
	SessionID *uuid.UUID
}

// AnalyzeResult is a stored case together with the full pipeline output.
type AnalyzeResult struct {
	Case     *domain.Case         `json:"case"`
	Analysis *domain.CaseAnalysis `json:"analysis"`
}

// ListCasesInput is the DTO for listing cases.
type ListCasesInput struct {
	Category *domain.Category
	Offset   int
	Limit    int
}

// CaseReport is a rendered plain-text report ready for download.
type CaseReport struct {
	Filename string
	Body     string
}

// CaseService defines the case analysis and management contract.
type CaseService interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeResult, error)
	Preview(ctx context.Context, text string) (*domain.CaseAnalysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	List(ctx context.Context, input *ListCasesInput) ([]domain.Case, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) (*domain.Case, error)
	ConfirmSummary(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	Report(ctx context.Context, id uuid.UUID) (*CaseReport, error)
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error
}

type caseService struct {
	analyzer      CaseAnalyzer
	caseRepo      port.CaseRepository
	sessionRepo   port.SessionRepository
	publisher     port.CaseEventPublisher
	recorder      AnalysisRecorder
	maxTextLength int
	log           *zap.Logger
}

// NewCaseService creates a new CaseService implementation. A maxTextLength of
// zero disables the length check.
func NewCaseService(
	analyzer CaseAnalyzer,
	caseRepo port.CaseRepository,
	sessionRepo port.SessionRepository,
	publisher port.CaseEventPublisher,
	recorder AnalysisRecorder,
	maxTextLength int,
	logger *zap.Logger,
) CaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &caseService{
		analyzer:      analyzer,
		caseRepo:      caseRepo,
		sessionRepo:   sessionRepo,
		publisher:     publisher,
		recorder:      recorder,
		maxTextLength: maxTextLength,
		log:           logger.Named("case_service"),
	}
}

func (s *caseService) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyText
	}
	if s.maxTextLength > 0 && utf8.RuneCountInString(text) > s.maxTextLength {
		return domain.ErrTextTooLong
	}
	return nil
}

func (s *caseService) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeResult, error) {
	if err := s.validateText(input.Text); err != nil {
		return nil, err
	}

	if input.SessionID != nil {
		sess, err := s.sessionRepo.GetByID(ctx, *input.SessionID)
		if err != nil {
			return nil, err
		}
		if sess.Status != domain.SessionStatusActive {
			return nil, domain.ErrSessionInactive
		}
	}

	start := time.Now()
	analysis := s.analyzer.Analyze(ctx, input.Text)
	elapsed := time.Since(start)

	c := domain.NewCase(&analysis, input.SessionID)
	c.ID = uuid.New()
	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("storing case: %w", err)
	}

	if input.SessionID != nil {
		if err := s.sessionRepo.IncrementInteractions(ctx, *input.SessionID); err != nil {
			s.log.Warn("failed to update session interactions",
				zap.String("session_id", input.SessionID.String()), zap.Error(err))
		}
	}

	if err := s.publisher.PublishCaseAnalyzed(ctx, c); err != nil {
		s.log.Warn("failed to publish case event", zap.String("case_id", c.ID.String()), zap.Error(err))
	}

	if s.recorder != nil {
		s.recorder.ObserveAnalysis(c.Category, c.UrgencyLevel, elapsed)
	}

	s.log.Info("case analyzed",
		zap.String("case_id", c.ID.String()),
		zap.String("category", string(c.Category)),
		zap.String("urgency", string(c.UrgencyLevel)),
		zap.String("language", c.DetectedLanguage),
		zap.Strings("fallbacks", c.Fallbacks),
		zap.Duration("elapsed", elapsed),
	)

	return &AnalyzeResult{Case: c, Analysis: &analysis}, nil
}

func (s *caseService) Preview(ctx context.Context, text string) (*domain.CaseAnalysis, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}
	start := time.Now()
	analysis := s.analyzer.Analyze(ctx, text)
	if s.recorder != nil {
		s.recorder.ObserveAnalysis(analysis.CategoryResult.Category, analysis.Advice.UrgencyLevel, time.Since(start))
	}
	return &analysis, nil
}

func (s *caseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return s.caseRepo.GetByID(ctx, id)
}

func (s *caseService) List(ctx context.Context, input *ListCasesInput) ([]domain.Case, int, error) {
	if input.Category != nil && !domain.ValidCategories[*input.Category] {
		return nil, 0, domain.ErrInvalidCategory
	}
	return s.caseRepo.List(ctx, port.CaseFilter{Category: input.Category}, input.Offset, input.Limit)
}

func (s *caseService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CaseStatus) (*domain.Case, error) {
	if !domain.ValidCaseStatuses[status] {
		return nil, domain.ErrInvalidCaseStatus
	}
	if err := s.caseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.caseRepo.GetByID(ctx, id)
}

func (s *caseService) ConfirmSummary(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	if err := s.caseRepo.ConfirmSummary(ctx, id); err != nil {
		return nil, err
	}
	return s.caseRepo.GetByID(ctx, id)
}

func (s *caseService) Report(ctx context.Context, id uuid.UUID) (*CaseReport, error) {
	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &CaseReport{
		Filename: export.ReportFilename(now),
		Body:     export.RenderReport(c, now),
	}, nil
}

func (s *caseService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return domain.ErrUnsupportedFormat
	}
	cases, err := s.caseRepo.ListSince(ctx, time.Time{})
	if err != nil {
		return err
	}
	return export.Write(w, format, cases)
}
