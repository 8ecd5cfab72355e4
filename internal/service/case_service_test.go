package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nyaya/internal/domain"
	"nyaya/internal/export"
	"nyaya/internal/port"
	"nyaya/internal/service"
	"nyaya/mocks"
)

type recordedAnalysis struct {
	category domain.Category
	urgency  domain.UrgencyLevel
}

type stubAnalysisRecorder struct {
	calls []recordedAnalysis
}

func (r *stubAnalysisRecorder) ObserveAnalysis(category domain.Category, urgency domain.UrgencyLevel, _ time.Duration) {
	r.calls = append(r.calls, recordedAnalysis{category, urgency})
}

type caseServiceDeps struct {
	analyzer  *mocks.MockCaseAnalyzer
	caseRepo  *mocks.MockCaseRepo
	sessions  *mocks.MockSessionRepo
	publisher *mocks.MockCaseEventPublisher
	recorder  *stubAnalysisRecorder
}

func newCaseService(maxLen int) (service.CaseService, *caseServiceDeps) {
	d := &caseServiceDeps{
		analyzer:  new(mocks.MockCaseAnalyzer),
		caseRepo:  new(mocks.MockCaseRepo),
		sessions:  new(mocks.MockSessionRepo),
		publisher: new(mocks.MockCaseEventPublisher),
		recorder:  &stubAnalysisRecorder{},
	}
	svc := service.NewCaseService(d.analyzer, d.caseRepo, d.sessions, d.publisher, d.recorder, maxLen, nil)
	return svc, d
}

func sampleAnalysis(text string) domain.CaseAnalysis {
	return domain.CaseAnalysis{
		OriginalText:     text,
		TranslatedText:   text,
		DetectedLanguage: "en",
		ExtractedInfo: domain.ExtractedInfo{
			Dates:         []string{"15/03/2024"},
			Amounts:       []string{"Rs. 50,000"},
			LegalKeywords: []string{"property"},
		},
		CategoryResult: domain.CategoryResult{
			Category:      domain.CategoryProperty,
			Confidence:    0.9,
			Subcategories: []string{"ownership", "tenancy", "registration", "disputes"},
		},
		Sentiment: domain.SentimentResult{Label: "NEGATIVE", Score: 0.8},
		Advice: domain.AdviceResult{
			RecommendedSteps: []string{"Verify property documents", "Consult a property lawyer"},
			ApplicableLaws:   []string{"Transfer of Property Act, 1882"},
			UrgencyLevel:     domain.UrgencyMedium,
		},
		Summary:   "**LEGAL SITUATION SUMMARY**",
		Fallbacks: []string{},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCaseService_Analyze_WithSession(t *testing.T) {
	svc, d := newCaseService(100)
	sessionID := uuid.New()
	text := "My landlord took Rs. 50,000 on 15/03/2024"

	d.sessions.On("GetByID", mock.Anything, sessionID).
		Return(&domain.Session{ID: sessionID, Status: domain.SessionStatusActive}, nil)
	d.analyzer.On("Analyze", mock.Anything, text).Return(sampleAnalysis(text))
	d.caseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Case")).Return(nil)
	d.sessions.On("IncrementInteractions", mock.Anything, sessionID).Return(nil)
	d.publisher.On("PublishCaseAnalyzed", mock.Anything, mock.AnythingOfType("*domain.Case")).Return(nil)

	result, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: text, SessionID: &sessionID})
	require.NoError(t, err)

	c := result.Case
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, &sessionID, c.SessionID)
	assert.Equal(t, domain.CategoryProperty, c.Category)
	assert.Equal(t, domain.UrgencyMedium, c.UrgencyLevel)
	assert.Equal(t, domain.CaseStatusActive, c.Status)
	assert.Equal(t, []string{"Verify property documents", "Consult a property lawyer"}, c.RecommendedSteps)
	assert.Len(t, c.Entities, 3)
	assert.Equal(t, text, result.Analysis.OriginalText)

	require.Len(t, d.recorder.calls, 1)
	assert.Equal(t, recordedAnalysis{domain.CategoryProperty, domain.UrgencyMedium}, d.recorder.calls[0])

	d.sessions.AssertExpectations(t)
	d.caseRepo.AssertExpectations(t)
	d.publisher.AssertExpectations(t)
}

func TestCaseService_Analyze_WithoutSession(t *testing.T) {
	svc, d := newCaseService(0)
	text := "Someone stole my phone"

	d.analyzer.On("Analyze", mock.Anything, text).Return(sampleAnalysis(text))
	d.caseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Case")).Return(nil)
	d.publisher.On("PublishCaseAnalyzed", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: text})
	require.NoError(t, err)
	assert.Nil(t, result.Case.SessionID)

	d.sessions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	d.sessions.AssertNotCalled(t, "IncrementInteractions", mock.Anything, mock.Anything)
}

func TestCaseService_Analyze_RejectsEmptyText(t *testing.T) {
	svc, d := newCaseService(100)

	for _, text := range []string{"", "   \n\t"} {
		_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: text})
		assert.ErrorIs(t, err, domain.ErrEmptyText)
	}
	d.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestCaseService_Analyze_LengthCountsRunes(t *testing.T) {
	svc, d := newCaseService(10)

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: strings.Repeat("अ", 11)})
	assert.ErrorIs(t, err, domain.ErrTextTooLong)

	// Ten Devanagari runes are thirty bytes but within the limit.
	text := strings.Repeat("अ", 10)
	d.analyzer.On("Analyze", mock.Anything, text).Return(sampleAnalysis(text))
	d.caseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.publisher.On("PublishCaseAnalyzed", mock.Anything, mock.Anything).Return(nil)

	_, err = svc.Analyze(context.Background(), &service.AnalyzeInput{Text: text})
	assert.NoError(t, err)
}

func TestCaseService_Analyze_UnknownSession(t *testing.T) {
	svc, d := newCaseService(100)
	sessionID := uuid.New()
	d.sessions.On("GetByID", mock.Anything, sessionID).Return(nil, domain.ErrSessionNotFound)

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: "hello", SessionID: &sessionID})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	d.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestCaseService_Analyze_InactiveSession(t *testing.T) {
	svc, d := newCaseService(100)
	sessionID := uuid.New()
	d.sessions.On("GetByID", mock.Anything, sessionID).
		Return(&domain.Session{ID: sessionID, Status: domain.SessionStatusExpired}, nil)

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: "hello", SessionID: &sessionID})
	assert.ErrorIs(t, err, domain.ErrSessionInactive)
}

func TestCaseService_Analyze_StoreFailure(t *testing.T) {
	svc, d := newCaseService(100)
	d.analyzer.On("Analyze", mock.Anything, "hello").Return(sampleAnalysis("hello"))
	d.caseRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing case")
	d.publisher.AssertNotCalled(t, "PublishCaseAnalyzed", mock.Anything, mock.Anything)
	assert.Empty(t, d.recorder.calls)
}

func TestCaseService_Analyze_PublishFailureIsNotFatal(t *testing.T) {
	svc, d := newCaseService(100)
	sessionID := uuid.New()

	d.sessions.On("GetByID", mock.Anything, sessionID).
		Return(&domain.Session{ID: sessionID, Status: domain.SessionStatusActive}, nil)
	d.analyzer.On("Analyze", mock.Anything, "hello").Return(sampleAnalysis("hello"))
	d.caseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.sessions.On("IncrementInteractions", mock.Anything, sessionID).Return(errors.New("timeout"))
	d.publisher.On("PublishCaseAnalyzed", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	result, err := svc.Analyze(context.Background(), &service.AnalyzeInput{Text: "hello", SessionID: &sessionID})
	require.NoError(t, err)
	assert.NotNil(t, result.Case)
}

func TestCaseService_Preview(t *testing.T) {
	svc, d := newCaseService(100)
	d.analyzer.On("Analyze", mock.Anything, "hello").Return(sampleAnalysis("hello"))

	got, err := svc.Preview(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryProperty, got.CategoryResult.Category)
	assert.Len(t, d.recorder.calls, 1)
	d.caseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	_, err = svc.Preview(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestCaseService_List(t *testing.T) {
	svc, d := newCaseService(100)
	family := domain.CategoryFamily
	cases := []domain.Case{{ID: uuid.New(), Category: family}}
	d.caseRepo.On("List", mock.Anything, port.CaseFilter{Category: &family}, 0, 20).Return(cases, 1, nil)

	got, total, err := svc.List(context.Background(), &service.ListCasesInput{Category: &family, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, cases, got)

	bogus := domain.Category("tax")
	_, _, err = svc.List(context.Background(), &service.ListCasesInput{Category: &bogus, Limit: 20})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCaseService_UpdateStatus(t *testing.T) {
	svc, d := newCaseService(100)
	id := uuid.New()

	_, err := svc.UpdateStatus(context.Background(), id, domain.CaseStatus("deleted"))
	assert.ErrorIs(t, err, domain.ErrInvalidCaseStatus)

	d.caseRepo.On("UpdateStatus", mock.Anything, id, domain.CaseStatusClosed).Return(nil)
	d.caseRepo.On("GetByID", mock.Anything, id).Return(&domain.Case{ID: id, Status: domain.CaseStatusClosed}, nil)

	c, err := svc.UpdateStatus(context.Background(), id, domain.CaseStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusClosed, c.Status)
}

func TestCaseService_UpdateStatus_NotFound(t *testing.T) {
	svc, d := newCaseService(100)
	id := uuid.New()
	d.caseRepo.On("UpdateStatus", mock.Anything, id, domain.CaseStatusArchived).Return(domain.ErrCaseNotFound)

	_, err := svc.UpdateStatus(context.Background(), id, domain.CaseStatusArchived)
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestCaseService_ConfirmSummary(t *testing.T) {
	svc, d := newCaseService(100)
	id := uuid.New()
	d.caseRepo.On("ConfirmSummary", mock.Anything, id).Return(nil)
	d.caseRepo.On("GetByID", mock.Anything, id).Return(&domain.Case{ID: id, IsConfirmed: true}, nil)

	c, err := svc.ConfirmSummary(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, c.IsConfirmed)
}

func TestCaseService_Report(t *testing.T) {
	svc, d := newCaseService(100)
	id := uuid.New()
	d.caseRepo.On("GetByID", mock.Anything, id).Return(&domain.Case{
		ID:               id,
		Summary:          "**LEGAL SITUATION SUMMARY**",
		RecommendedSteps: []string{"File a police complaint"},
		ApplicableLaws:   domain.StringList{"Indian Penal Code, 1860"},
		UrgencyLevel:     domain.UrgencyHigh,
	}, nil)

	report, err := svc.Report(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.Filename, "legal_analysis_"))
	assert.Contains(t, report.Body, "1. File a police complaint")
	assert.Contains(t, report.Body, "• Indian Penal Code, 1860")
}

func TestCaseService_Export(t *testing.T) {
	svc, d := newCaseService(100)
	d.caseRepo.On("ListSince", mock.Anything, time.Time{}).Return([]domain.Case{{ID: uuid.New()}}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), domain.ExportFormatCSV, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), export.BOM))

	err := svc.Export(context.Background(), domain.ExportFormat("pdf"), &buf)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
