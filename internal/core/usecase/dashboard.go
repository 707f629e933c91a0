package usecase

import (
	"context"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

const (
	dashboardRecentLimit      = 10
	dashboardNotifyLimit      = 10
	notificationsFetchDefault = 50
)

type DashboardUseCase struct {
	analyses      ports.AnalysisRepository
	notifications ports.NotificationRepository
}

func NewDashboardUseCase(analyses ports.AnalysisRepository, notifications ports.NotificationRepository) *DashboardUseCase {
	return &DashboardUseCase{analyses: analyses, notifications: notifications}
}

// Summary builds the landing page: per-user for regular accounts,
// fleet-wide for admins.
func (uc *DashboardUseCase) Summary(ctx context.Context, caller domain.Principal) (*domain.Dashboard, error) {
	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	summary, err := uc.analyses.Summary(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("aggregate analyses: %w", err)
	}
	recent, err := uc.analyses.ListRecent(ctx, scope, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent analyses: %w", err)
	}
	notifications, err := uc.notifications.ListForUser(ctx, caller.UserID, dashboardNotifyLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return &domain.Dashboard{
		AnalysisSummary: summary,
		RecentAnalyses:  recent,
		Notifications:   notifications,
	}, nil
}

func (uc *DashboardUseCase) Notifications(ctx context.Context, caller domain.Principal) ([]domain.Notification, error) {
	notifications, err := uc.notifications.ListForUser(ctx, caller.UserID, notificationsFetchDefault)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (uc *DashboardUseCase) MarkNotificationRead(ctx context.Context, caller domain.Principal, id string) error {
	if err := uc.notifications.MarkRead(ctx, id, caller.UserID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
