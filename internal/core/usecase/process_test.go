package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func seedPendingAnalysis(t *testing.T, analyses *analysisRepoFake, storage *storageFake) *domain.Analysis {
	t.Helper()
	analysis := &domain.Analysis{
		ID:          "a1",
		UserID:      "u1",
		FileName:    "clip.mp4",
		StoragePath: "a1_clip.mp4",
		Status:      domain.AnalysisPending,
	}
	if err := analyses.Create(context.Background(), analysis); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	if err := storage.Save(context.Background(), analysis.StoragePath, bytes.NewBufferString("frames")); err != nil {
		t.Fatalf("seed storage: %v", err)
	}
	return analysis
}

func TestProcessByIDSavesVerdict(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	history := &historyRepoFake{}
	notifications := &notificationRepoFake{}
	detector := &detectorFake{verdict: domain.Verdict{
		Prediction:      domain.PredictionFake,
		Confidence:      93.4,
		FakeProbability: 93.4,
		RealProbability: 6.6,
		FramesAnalyzed:  42,
	}}
	seedPendingAnalysis(t, analyses, storage)

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, history, notifications)
	if err := uc.ProcessByID(context.Background(), "a1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	analysis, err := analyses.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("fetch analysis: %v", err)
	}
	if analysis.Status != domain.AnalysisCompleted {
		t.Fatalf("expected completed, got %s", analysis.Status)
	}
	if analysis.Prediction != domain.PredictionFake || analysis.FramesAnalyzed != 42 {
		t.Fatalf("verdict not persisted: %+v", analysis)
	}
	if len(history.entries) != 1 || history.entries[0].ActionType != domain.ActionScan {
		t.Fatalf("expected one scan history entry, got %+v", history.entries)
	}
	if len(notifications.notifications) != 1 || notifications.notifications[0].Type != "success" {
		t.Fatalf("expected success notification, got %+v", notifications.notifications)
	}
}

func TestProcessByIDMarksFailureAndNotifies(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	notifications := &notificationRepoFake{}
	detector := &detectorFake{err: errors.New("decode error")}
	seedPendingAnalysis(t, analyses, storage)

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, &historyRepoFake{}, notifications)
	if err := uc.ProcessByID(context.Background(), "a1"); err == nil {
		t.Fatalf("expected error")
	}

	analysis, _ := analyses.GetByID(context.Background(), "a1")
	if analysis.Status != domain.AnalysisFailed {
		t.Fatalf("expected failed, got %s", analysis.Status)
	}
	if analysis.Error == "" {
		t.Fatalf("expected recorded error message")
	}
	if len(notifications.notifications) != 1 || notifications.notifications[0].Type != "error" {
		t.Fatalf("expected error notification, got %+v", notifications.notifications)
	}
}

func TestProcessByIDRemovesUploadAfterVerdict(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	detector := &detectorFake{verdict: domain.Verdict{Prediction: domain.PredictionReal, Confidence: 81}}
	analysis := seedPendingAnalysis(t, analyses, storage)

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, &historyRepoFake{}, &notificationRepoFake{})
	if err := uc.ProcessByID(context.Background(), analysis.ID); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if _, ok := storage.files[analysis.StoragePath]; ok {
		t.Fatalf("expected upload %s to be removed after verdict", analysis.StoragePath)
	}
}

func TestProcessByIDKeepsUploadOnFailure(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	detector := &detectorFake{err: errors.New("decode error")}
	analysis := seedPendingAnalysis(t, analyses, storage)

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, &historyRepoFake{}, &notificationRepoFake{})
	if err := uc.ProcessByID(context.Background(), analysis.ID); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := storage.files[analysis.StoragePath]; !ok {
		t.Fatalf("expected failed upload %s to stay in storage", analysis.StoragePath)
	}
}

func TestProcessByIDSkipsFinishedAnalyses(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	detector := &detectorFake{}
	analysis := seedPendingAnalysis(t, analyses, storage)
	if err := analyses.UpdateStatus(context.Background(), analysis.ID, domain.AnalysisCompleted, ""); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, &historyRepoFake{}, &notificationRepoFake{})
	if err := uc.ProcessByID(context.Background(), analysis.ID); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if detector.calls != 0 {
		t.Fatalf("expected redelivery to be ignored, detector called %d times", detector.calls)
	}
}

func TestProcessByIDVerdictSurvivesHistoryFailure(t *testing.T) {
	analyses := newAnalysisRepoFake()
	storage := newStorageFake()
	history := &historyRepoFake{err: errors.New("db down")}
	detector := &detectorFake{verdict: domain.Verdict{Prediction: domain.PredictionReal, Confidence: 88}}
	seedPendingAnalysis(t, analyses, storage)

	uc := NewProcessAnalysisUseCase(analyses, storage, detector, history, &notificationRepoFake{})
	if err := uc.ProcessByID(context.Background(), "a1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	analysis, _ := analyses.GetByID(context.Background(), "a1")
	if analysis.Status != domain.AnalysisCompleted {
		t.Fatalf("expected completed despite history failure, got %s", analysis.Status)
	}
}
