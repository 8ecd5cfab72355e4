package analysis

import (
	"strings"

	"nyaya/internal/domain"
)

var urgentKeywords = []string{"emergency", "urgent", "immediate", "threat", "violence", "harassment", "eviction"}

const (
	criminalUrgencyBonus = 2
	highUrgencyScore     = 3
	mediumUrgencyScore   = 1
)

// UrgencyScore counts the urgent keywords contained in text, plus a bonus for
// criminal matters. Each keyword counts at most once.
func UrgencyScore(text string, category domain.Category) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	if category == domain.CategoryCriminal {
		score += criminalUrgencyBonus
	}
	return score
}

// AssessUrgency maps the urgency score of text to a tier.
func AssessUrgency(text string, category domain.Category) domain.UrgencyLevel {
	return urgencyTier(UrgencyScore(text, category))
}

func urgencyTier(score int) domain.UrgencyLevel {
	switch {
	case score >= highUrgencyScore:
		return domain.UrgencyHigh
	case score >= mediumUrgencyScore:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}
