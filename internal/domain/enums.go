package domain

// Category is the legal domain a situation belongs to.
type Category string

const (
	CategoryFamily     Category = "family"
	CategoryCriminal   Category = "criminal"
	CategoryCivil      Category = "civil"
	CategoryProperty   Category = "property"
	CategoryEmployment Category = "employment"
	CategoryConsumer   Category = "consumer"
	CategoryGeneral    Category = "general"
)

// KnownCategories lists the categories a classifier may choose from, in the
// order they are offered as candidate labels.
var KnownCategories = []Category{
	CategoryFamily,
	CategoryCriminal,
	CategoryCivil,
	CategoryProperty,
	CategoryEmployment,
	CategoryConsumer,
}

// ValidCategories contains every category value, including the general fallback.
var ValidCategories = map[Category]bool{
	CategoryFamily:     true,
	CategoryCriminal:   true,
	CategoryCivil:      true,
	CategoryProperty:   true,
	CategoryEmployment: true,
	CategoryConsumer:   true,
	CategoryGeneral:    true,
}

// UrgencyLevel is the urgency tier assigned to a situation.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "LOW"
	UrgencyMedium UrgencyLevel = "MEDIUM"
	UrgencyHigh   UrgencyLevel = "HIGH"
)

// CaseStatus represents the lifecycle of a stored case.
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusArchived CaseStatus = "archived"
)

// ValidCaseStatuses is the set of statuses a case may be moved to.
var ValidCaseStatuses = map[CaseStatus]bool{
	CaseStatusActive:   true,
	CaseStatusClosed:   true,
	CaseStatusArchived: true,
}

// SessionStatus represents the lifecycle of a user session.
type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusEnded   SessionStatus = "ended"
	SessionStatusExpired SessionStatus = "expired"
)

// Supported input languages.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
	LanguageMarathi = "mr"
)

// SupportedLanguages maps language codes accepted as a session preference.
var SupportedLanguages = map[string]bool{
	LanguageEnglish: true,
	LanguageHindi:   true,
	LanguageMarathi: true,
}

// EntityType identifies what kind of value was extracted from a description.
type EntityType string

const (
	EntityTypeDate         EntityType = "date"
	EntityTypeAmount       EntityType = "amount"
	EntityTypeLegalKeyword EntityType = "legal_keyword"
)

// ExportFormat is the file format of a case export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
