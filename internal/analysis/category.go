package analysis

import (
	"strings"

	"nyaya/internal/domain"
)

var subcategories = map[domain.Category][]string{
	domain.CategoryFamily:     {"divorce", "custody", "marriage", "property", "inheritance"},
	domain.CategoryCriminal:   {"theft", "assault", "fraud", "harassment", "violence"},
	domain.CategoryCivil:      {"contract", "debt", "defamation", "negligence", "breach"},
	domain.CategoryProperty:   {"rent", "eviction", "ownership", "dispute", "registration"},
	domain.CategoryEmployment: {"salary", "termination", "harassment", "rights", "compensation"},
	domain.CategoryConsumer:   {"refund", "warranty", "service", "product", "complaint"},
}

// DefaultCandidateLabels returns the classifier labels for every known category.
func DefaultCandidateLabels() []string {
	labels := make([]string, 0, len(domain.KnownCategories))
	for _, c := range domain.KnownCategories {
		labels = append(labels, string(c))
	}
	return labels
}

// Subcategories returns a copy of the subcategories of a known category, or an
// empty slice.
func Subcategories(category domain.Category) []string {
	return append([]string{}, subcategories[category]...)
}

// ParseCategory normalizes a classifier label. ok is false for labels outside
// the six known categories.
func ParseCategory(label string) (domain.Category, bool) {
	c := domain.Category(strings.ToLower(strings.TrimSpace(label)))
	if _, known := subcategories[c]; !known {
		return domain.CategoryGeneral, false
	}
	return c, true
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
