package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

const sheetName = "Reports"

var headers = []string{
	"Report ID", "User Email", "User Name", "File Name",
	"Prediction", "Confidence (%)", "Frames Analyzed", "Model Version", "Created At",
}

// Exporter renders admin report listings as an .xlsx workbook.
type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(reports []domain.ReportWithUser) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2F5496"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, report := range reports {
		row := i + 2
		values := []any{
			report.ID,
			report.UserEmail,
			report.UserName,
			report.FileName,
			report.Prediction,
			report.Confidence,
			report.FramesAnalyzed,
			report.ModelVersion,
			report.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 38); err != nil {
		return nil, fmt.Errorf("size columns: %w", err)
	}
	_ = f.SetColWidth(sheetName, "B", "D", 28)
	_ = f.SetColWidth(sheetName, "E", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
