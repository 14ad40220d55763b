package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nxtei/quality-draw/internal/model"
)

const sheetName = "抽签记录"

// XLSXOptions controls workbook rendering.
type XLSXOptions struct {
	// Location for the time column; nil means local time.
	Location *time.Location
}

// WriteXLSX writes records to a new workbook at path.
func WriteXLSX(records []model.DrawRecord, path string, opts XLSXOptions) error {
	f, err := buildWorkbook(records, opts)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteXLSXTo streams the workbook to w.
func WriteXLSXTo(w io.Writer, records []model.DrawRecord, opts XLSXOptions) error {
	f, err := buildWorkbook(records, opts)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(records []model.DrawRecord, opts XLSXOptions) (*excelize.File, error) {
	if err := checkRecords(records); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, ColumnWidths[i]); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range Rows(records, opts.Location) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		cells := row.Cells()
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	ok = true
	return f, nil
}
