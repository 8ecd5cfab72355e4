package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nyaya/internal/domain"
)

const noneSentinel = "None"

// ComposeSummary renders an analysis as a fixed-structure, human-readable report.
// The description section always shows the translated text.
func ComposeSummary(
	original, translated string,
	category domain.CategoryResult,
	info domain.ExtractedInfo,
	sentiment domain.SentimentResult,
) string {
	var b strings.Builder
	b.WriteString("**LEGAL SITUATION SUMMARY**\n\n")
	fmt.Fprintf(&b, "**Primary Category:** %s\n", titleCase(string(category.Category)))
	fmt.Fprintf(&b, "**Confidence Level:** %s\n\n", percent(category.Confidence))
	b.WriteString("**Key Information Extracted:**\n")
	fmt.Fprintf(&b, "- Legal Keywords Found: %s\n", joinOrNone(info.LegalKeywords))
	fmt.Fprintf(&b, "- Dates Mentioned: %s\n", joinOrNone(info.Dates))
	fmt.Fprintf(&b, "- Monetary Values: %s\n\n", joinOrNone(info.Amounts))
	fmt.Fprintf(&b, "**Situation Sentiment:** %s (Confidence: %s)\n\n", sentiment.Label, percent(sentiment.Score))
	b.WriteString("**Situation Description:**\n")
	b.WriteString(translated)

	return strings.TrimSpace(b.String())
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return noneSentinel
	}
	return strings.Join(values, ", ")
}
