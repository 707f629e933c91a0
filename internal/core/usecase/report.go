package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type ReportUseCase struct {
	reports      ports.ReportRepository
	renderer     ports.ReportRenderer
	modelVersion string
}

func NewReportUseCase(reports ports.ReportRepository, renderer ports.ReportRenderer, modelVersion string) *ReportUseCase {
	return &ReportUseCase{
		reports:      reports,
		renderer:     renderer,
		modelVersion: modelVersion,
	}
}

func (uc *ReportUseCase) Create(ctx context.Context, caller domain.Principal, report *domain.Report) (*domain.Report, error) {
	if report == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create report", errors.New("missing body"))
	}
	if strings.TrimSpace(report.FileName) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create report", errors.New("file_name is required"))
	}

	prediction := strings.ToUpper(strings.TrimSpace(report.Prediction))
	if prediction != domain.PredictionFake && prediction != domain.PredictionReal {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create report",
			fmt.Errorf("prediction must be %s or %s", domain.PredictionFake, domain.PredictionReal))
	}
	if report.Confidence < 0 || report.Confidence > 100 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create report", errors.New("confidence must be within [0,100]"))
	}

	report.ID = uuid.NewString()
	report.UserID = caller.UserID
	report.Prediction = prediction
	if report.ModelVersion == "" {
		report.ModelVersion = uc.modelVersion
	}
	report.CreatedAt = time.Now().UTC()

	if err := uc.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

func (uc *ReportUseCase) List(ctx context.Context, caller domain.Principal) ([]domain.Report, error) {
	reports, err := uc.reports.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// RenderPDF returns the rendered document and a download filename.
func (uc *ReportUseCase) RenderPDF(ctx context.Context, caller domain.Principal, id string) ([]byte, string, error) {
	report, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch report: %w", err)
	}
	if report.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, "", domain.WrapError(domain.ErrForbidden, "render report", errors.New("not the owner"))
	}

	pdf, err := uc.renderer.Render(report, caller.Name)
	if err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}
	filename := fmt.Sprintf("deepfake_report_%s.pdf", report.CreatedAt.Format("20060102_150405"))
	return pdf, filename, nil
}
