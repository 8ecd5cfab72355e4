package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"nyaya/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"Case ID",
	"Created At",
	"Detected Language",
	"Category",
	"Confidence",
	"Urgency",
	"Sentiment",
	"Sentiment Score",
	"Status",
	"Confirmed",
	"Applicable Laws",
	"Fallbacks",
	"Original Text",
	"Translated Text",
}

// Writer wraps csv.Writer for exporting cases as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteCases converts a batch of cases to CSV rows and writes them.
func (w *Writer) WriteCases(cases []domain.Case) error {
	for i := range cases {
		if err := w.csv.Write(caseToRow(&cases[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and every case to out.
func WriteCSV(out io.Writer, cases []domain.Case) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteCases(cases); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func caseToRow(c *domain.Case) []string {
	return []string{
		c.ID.String(),
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.DetectedLanguage,
		string(c.Category),
		formatScore(c.ConfidenceScore),
		string(c.UrgencyLevel),
		c.SentimentLabel,
		formatScore(c.SentimentScore),
		string(c.Status),
		formatBool(c.IsConfirmed),
		strings.Join(c.ApplicableLaws, "; "),
		strings.Join(c.Fallbacks, "; "),
		c.OriginalText,
		c.TranslatedText,
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
