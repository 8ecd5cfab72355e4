// Package export renders stored cases as CSV, XLSX and plain-text reports.
package export

import (
	"io"

	"nyaya/internal/domain"
)

// Write renders cases in the requested format.
func Write(out io.Writer, format domain.ExportFormat, cases []domain.Case) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(out, cases)
	case domain.ExportFormatXLSX:
		return WriteXLSX(out, cases)
	default:
		return domain.ErrUnsupportedFormat
	}
}
