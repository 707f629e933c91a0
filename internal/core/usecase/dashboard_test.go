package usecase

import (
	"context"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestDashboardSummaryScopesToCaller(t *testing.T) {
	analyses := newAnalysisRepoFake()
	notifications := &notificationRepoFake{}
	ctx := context.Background()
	_ = analyses.Create(ctx, &domain.Analysis{ID: "a1", UserID: "u1", Status: domain.AnalysisCompleted, Prediction: domain.PredictionFake})
	_ = analyses.Create(ctx, &domain.Analysis{ID: "a2", UserID: "u2", Status: domain.AnalysisCompleted, Prediction: domain.PredictionReal})
	_ = notifications.Create(ctx, &domain.Notification{ID: "n1", UserID: "u1"})
	_ = notifications.Create(ctx, &domain.Notification{ID: "n2", Title: "maintenance"}) // broadcast

	uc := NewDashboardUseCase(analyses, notifications)

	dash, err := uc.Summary(ctx, domain.Principal{UserID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if dash.TotalAnalyses != 1 || dash.DeepfakesDetected != 1 {
		t.Fatalf("expected per-user counters, got %+v", dash.AnalysisSummary)
	}
	if len(dash.Notifications) != 2 {
		t.Fatalf("expected own plus broadcast notifications, got %d", len(dash.Notifications))
	}

	adminDash, err := uc.Summary(ctx, domain.Principal{UserID: "root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin Summary() error = %v", err)
	}
	if adminDash.TotalAnalyses != 2 {
		t.Fatalf("expected fleet-wide counters for admin, got %+v", adminDash.AnalysisSummary)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	notifications := &notificationRepoFake{}
	ctx := context.Background()
	_ = notifications.Create(ctx, &domain.Notification{ID: "n1", UserID: "u1"})

	uc := NewDashboardUseCase(newAnalysisRepoFake(), notifications)
	if err := uc.MarkNotificationRead(ctx, domain.Principal{UserID: "u1"}, "n1"); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}
	if !notifications.notifications[0].IsRead {
		t.Fatalf("expected notification marked read")
	}

	err := uc.MarkNotificationRead(ctx, domain.Principal{UserID: "u2"}, "n1")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for foreign notification, got %v", err)
	}
}
