package reportpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// Renderer produces the downloadable one-page detection report.
type Renderer struct {
	productName string
}

func New(productName string) *Renderer {
	if productName == "" {
		productName = "Unmasked"
	}
	return &Renderer{productName: productName}
}

func (r *Renderer) Render(report *domain.Report, generatedFor string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.productName+" Detection Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, r.productName+" Detection Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Generated "+time.Now().UTC().Format("2006-01-02 15:04 UTC"), "", 1, "C", false, 0, "")
	if generatedFor != "" {
		pdf.CellFormat(0, 6, "Prepared for "+generatedFor, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	if report.Prediction == domain.PredictionFake {
		pdf.SetFillColor(220, 53, 69)
	} else {
		pdf.SetFillColor(25, 135, 84)
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("Verdict: %s (%.1f%% confidence)", report.Prediction, report.Confidence),
		"", 1, "C", true, 0, "")
	pdf.Ln(8)

	pdf.SetTextColor(0, 0, 0)
	rows := [][2]string{
		{"Report ID", report.ID},
		{"File", report.FileName},
		{"Prediction", report.Prediction},
		{"Confidence", fmt.Sprintf("%.2f%%", report.Confidence)},
		{"Frames analyzed", fmt.Sprintf("%d", report.FramesAnalyzed)},
		{"Model version", report.ModelVersion},
		{"Analyzed at", report.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
	}
	pdf.SetFont("Helvetica", "", 11)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 9, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, row[1], "1", 1, "L", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Interpretation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, interpretation(report), "", "L", false)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 4, "Automated classification is probabilistic and should be weighed "+
		"alongside provenance checks and expert review before drawing conclusions.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func interpretation(report *domain.Report) string {
	if report.Prediction == domain.PredictionFake {
		return fmt.Sprintf("The classifier sampled %d frames of %q and found patterns consistent "+
			"with synthetic or manipulated media at %.1f%% confidence. Treat the footage as "+
			"untrustworthy until its origin is verified.",
			report.FramesAnalyzed, report.FileName, report.Confidence)
	}
	return fmt.Sprintf("The classifier sampled %d frames of %q and found no manipulation "+
		"signatures, rating the footage authentic at %.1f%% confidence.",
		report.FramesAnalyzed, report.FileName, report.Confidence)
}
