package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"nyaya/internal/domain"
)

// SheetName is the worksheet that holds exported cases.
const SheetName = "Cases"

// WriteXLSX writes every case as one row of the "Cases" worksheet.
func WriteXLSX(out io.Writer, cases []domain.Case) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX rename sheet: %w", err)
	}

	if err := setRow(f, 1, columns); err != nil {
		return err
	}
	for i := range cases {
		if err := setRow(f, i+2, caseToRow(&cases[i])); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export.WriteXLSX panes: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export.WriteXLSX cell: %w", err)
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
		return fmt.Errorf("export.WriteXLSX row %d: %w", row, err)
	}
	return nil
}
