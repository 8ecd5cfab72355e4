package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedInfo holds the structured facts pulled out of a situation description.
// Duplicates are preserved in the order they were matched.
type ExtractedInfo struct {
	Dates         []string `json:"dates"`
	Amounts       []string `json:"amounts"`
	LegalKeywords []string `json:"legal_keywords"`
}

// CategoryResult is the legal domain assigned to a situation.
type CategoryResult struct {
	Category      Category `json:"category"`
	Confidence    float64  `json:"confidence"`
	Subcategories []string `json:"subcategories"`
}

// SentimentResult is the sentiment reading of a situation.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AdviceResult contains the recommended actions and statutes for a situation.
type AdviceResult struct {
	RecommendedSteps []string     `json:"recommended_steps"`
	ApplicableLaws   []string     `json:"applicable_laws"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
}

// CaseAnalysis is the complete output of one analysis pipeline run.
type CaseAnalysis struct {
	OriginalText     string          `json:"original_text"`
	TranslatedText   string          `json:"translated_text"`
	DetectedLanguage string          `json:"detected_language"`
	ExtractedInfo    ExtractedInfo   `json:"extracted_info"`
	CategoryResult   CategoryResult  `json:"category_result"`
	Sentiment        SentimentResult `json:"sentiment"`
	Advice           AdviceResult    `json:"advice"`
	Summary          string          `json:"summary"`
	// Fallbacks names the pipeline stages that used a default instead of a
	// provider response.
	Fallbacks []string  `json:"fallbacks"`
	CreatedAt time.Time `json:"created_at"`
}

// Case is a persisted case analysis.
type Case struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	SessionID        *uuid.UUID   `db:"session_id" json:"session_id"`
	OriginalText     string       `db:"original_text" json:"original_text"`
	TranslatedText   string       `db:"translated_text" json:"translated_text"`
	DetectedLanguage string       `db:"detected_language" json:"detected_language"`
	Category         Category     `db:"category" json:"category"`
	ConfidenceScore  float64      `db:"confidence_score" json:"confidence_score"`
	Subcategories    StringList   `db:"subcategories" json:"subcategories"`
	UrgencyLevel     UrgencyLevel `db:"urgency_level" json:"urgency_level"`
	SentimentLabel   string       `db:"sentiment_label" json:"sentiment_label"`
	SentimentScore   float64      `db:"sentiment_score" json:"sentiment_score"`
	Summary          string       `db:"summary" json:"summary"`
	ApplicableLaws   StringList   `db:"applicable_laws" json:"applicable_laws"`
	Fallbacks        StringList   `db:"fallbacks" json:"fallbacks"`
	Status           CaseStatus   `db:"status" json:"status"`
	IsConfirmed      bool         `db:"is_confirmed" json:"is_confirmed"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`

	// Loaded from case_advice and case_entities.
	RecommendedSteps []string     `db:"-" json:"recommended_steps"`
	Entities         []CaseEntity `db:"-" json:"entities,omitempty"`
}

// CaseAdvice is one recommended step stored for a case.
type CaseAdvice struct {
	ID             uuid.UUID `db:"id" json:"id"`
	CaseID         uuid.UUID `db:"case_id" json:"case_id"`
	Position       int       `db:"position" json:"position"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CaseEntity is one extracted value stored for a case.
type CaseEntity struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CaseID      uuid.UUID  `db:"case_id" json:"case_id"`
	EntityType  EntityType `db:"entity_type" json:"entity_type"`
	EntityValue string     `db:"entity_value" json:"entity_value"`
	Position    int        `db:"position" json:"position"`
}

// NewCase builds a storable case from an analysis result.
func NewCase(a *CaseAnalysis, sessionID *uuid.UUID) *Case {
	c := &Case{
		SessionID:        sessionID,
		OriginalText:     a.OriginalText,
		TranslatedText:   a.TranslatedText,
		DetectedLanguage: a.DetectedLanguage,
		Category:         a.CategoryResult.Category,
		ConfidenceScore:  a.CategoryResult.Confidence,
		Subcategories:    StringList(a.CategoryResult.Subcategories),
		UrgencyLevel:     a.Advice.UrgencyLevel,
		SentimentLabel:   a.Sentiment.Label,
		SentimentScore:   a.Sentiment.Score,
		Summary:          a.Summary,
		ApplicableLaws:   StringList(a.Advice.ApplicableLaws),
		Fallbacks:        StringList(a.Fallbacks),
		Status:           CaseStatusActive,
		CreatedAt:        a.CreatedAt,
		RecommendedSteps: append([]string(nil), a.Advice.RecommendedSteps...),
	}
	c.Entities = entitiesFrom(a.ExtractedInfo)
	return c
}

func entitiesFrom(info ExtractedInfo) []CaseEntity {
	var out []CaseEntity
	add := func(t EntityType, values []string) {
		for i, v := range values {
			out = append(out, CaseEntity{EntityType: t, EntityValue: v, Position: i})
		}
	}
	add(EntityTypeDate, info.Dates)
	add(EntityTypeAmount, info.Amounts)
	add(EntityTypeLegalKeyword, info.LegalKeywords)
	return out
}

// Session represents an anonymous user session.
type Session struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	UserID             *string       `db:"user_id" json:"user_id"`
	LanguagePreference string        `db:"language_preference" json:"language_preference"`
	InteractionCount   int           `db:"interaction_count" json:"interaction_count"`
	Status             SessionStatus `db:"status" json:"status"`
	StartTime          time.Time     `db:"start_time" json:"start_time"`
	EndTime            *time.Time    `db:"end_time" json:"end_time"`
}

// Feedback is a user's rating of a case analysis.
type Feedback struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	CaseID           uuid.UUID  `db:"case_id" json:"case_id"`
	SessionID        *uuid.UUID `db:"session_id" json:"session_id"`
	Rating           int        `db:"rating" json:"rating"`
	FeedbackText     string     `db:"feedback_text" json:"feedback_text"`
	FeedbackCategory string     `db:"feedback_category" json:"feedback_category"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// KnowledgeEntry is one statute reference in the legal knowledge base.
type KnowledgeEntry struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Category      Category  `db:"category" json:"category" yaml:"category"`
	Subcategory   string    `db:"subcategory" json:"subcategory" yaml:"subcategory"`
	LawSection    string    `db:"law_section" json:"law_section" yaml:"law_section"`
	Description   string    `db:"description" json:"description" yaml:"description"`
	Keywords      string    `db:"keywords" json:"keywords" yaml:"keywords"`
	Applicability string    `db:"applicability" json:"applicability" yaml:"applicability"`
	CreatedAt     time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

// Stats holds aggregate analytics across all stored cases.
type Stats struct {
	TotalCases      int            `json:"total_cases"`
	CasesByCategory map[string]int `json:"cases_by_category"`
	CasesByLanguage map[string]int `json:"cases_by_language"`
	CasesByUrgency  map[string]int `json:"cases_by_urgency"`
	AverageRating   float64        `json:"average_rating"`
	CasesPerDay     map[string]int `json:"cases_per_day"`
}
