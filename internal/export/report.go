package export

import (
	"fmt"
	"strings"
	"time"

	"nyaya/internal/domain"
)

// RenderReport formats a case as the plain-text analysis report users download.
func RenderReport(c *domain.Case, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("LEGAL SITUATION ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(c.Summary)
	b.WriteString("\n\nRECOMMENDED ACTIONS:\n")
	for i, step := range c.RecommendedSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\nAPPLICABLE LAWS:\n")
	for _, law := range c.ApplicableLaws {
		fmt.Fprintf(&b, "• %s\n", law)
	}
	fmt.Fprintf(&b, "\nURGENCY: %s\n", c.UrgencyLevel)
	return b.String()
}

// ReportFilename returns the download name of a case report.
func ReportFilename(generatedAt time.Time) string {
	return fmt.Sprintf("legal_analysis_%s.txt", generatedAt.Format("20060102_150405"))
}

// BuildFilename returns the download name of a case export.
// Format: cases_{YYYY-MM-DD}.{csv|xlsx}
func BuildFilename(format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("cases_%s.%s", now.Format("2006-01-02"), format)
}

// ContentType returns the MIME type of an export format.
func ContentType(format domain.ExportFormat) (string, error) {
	switch format {
	case domain.ExportFormatCSV:
		return "text/csv; charset=utf-8", nil
	case domain.ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}
