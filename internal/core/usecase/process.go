package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type ProcessAnalysisUseCase struct {
	analyses      ports.AnalysisRepository
	storage       ports.ObjectStorage
	detector      ports.Detector
	history       ports.HistoryRepository
	notifications ports.NotificationRepository
}

func NewProcessAnalysisUseCase(
	analyses ports.AnalysisRepository,
	storage ports.ObjectStorage,
	detector ports.Detector,
	history ports.HistoryRepository,
	notifications ports.NotificationRepository,
) *ProcessAnalysisUseCase {
	return &ProcessAnalysisUseCase{
		analyses:      analyses,
		storage:       storage,
		detector:      detector,
		history:       history,
		notifications: notifications,
	}
}

// ProcessByID runs one queued analysis through the detector. Redelivered
// events for already-finished analyses are ignored.
func (uc *ProcessAnalysisUseCase) ProcessByID(ctx context.Context, analysisID string) error {
	analysis, err := uc.analyses.GetByID(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("fetch analysis: %w", err)
	}
	if analysis.Status == domain.AnalysisCompleted || analysis.Status == domain.AnalysisFailed {
		return nil
	}

	if err := uc.analyses.UpdateStatus(ctx, analysisID, domain.AnalysisProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	started := time.Now()
	verdict, err := uc.detector.Predict(ctx, analysis.FileName, func() (io.ReadCloser, error) {
		return uc.storage.Open(ctx, analysis.StoragePath)
	})
	elapsed := time.Since(started).Seconds()

	if err != nil {
		if markErr := uc.analyses.UpdateStatus(ctx, analysisID, domain.AnalysisFailed, err.Error()); markErr != nil {
			return fmt.Errorf("classify video: %w; mark failed: %v", err, markErr)
		}
		uc.notify(ctx, analysis, "Analysis failed",
			fmt.Sprintf("We could not analyze %s. Please try uploading it again.", analysis.FileName), "error")
		return fmt.Errorf("classify video: %w", err)
	}

	if err := uc.analyses.SaveVerdict(ctx, analysisID, verdict, elapsed); err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}

	// The upload has served its purpose once a verdict is stored. Failed
	// runs keep theirs so the file can be re-queued or inspected.
	_ = uc.storage.Remove(ctx, analysis.StoragePath)

	uc.recordScan(ctx, analysis, verdict)
	uc.notify(ctx, analysis, "Analysis complete",
		fmt.Sprintf("%s was classified as %s with %.1f%% confidence.",
			analysis.FileName, verdict.Prediction, verdict.Confidence), "success")

	return nil
}

// recordScan and notify are best-effort; a verdict must never be lost
// because a side table write failed.
func (uc *ProcessAnalysisUseCase) recordScan(ctx context.Context, analysis *domain.Analysis, verdict domain.Verdict) {
	_ = uc.history.Create(ctx, &domain.HistoryEntry{
		ID:         uuid.NewString(),
		UserID:     analysis.UserID,
		ActionType: domain.ActionScan,
		FileName:   analysis.FileName,
		Prediction: verdict.Prediction,
		Confidence: verdict.Confidence,
		CreatedAt:  time.Now().UTC(),
	})
}

func (uc *ProcessAnalysisUseCase) notify(ctx context.Context, analysis *domain.Analysis, title, message, kind string) {
	_ = uc.notifications.Create(ctx, &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    analysis.UserID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	})
}
