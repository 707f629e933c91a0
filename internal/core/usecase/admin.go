package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

const (
	adminLogsDefaultLimit = 200
	adminUserDetailLimit  = 10
)

type AdminUseCase struct {
	users         ports.UserRepository
	analyses      ports.AnalysisRepository
	reports       ports.ReportRepository
	history       ports.HistoryRepository
	notifications ports.NotificationRepository
	adminLogs     ports.AdminLogRepository
	exporter      ports.ReportExporter
}

func NewAdminUseCase(
	users ports.UserRepository,
	analyses ports.AnalysisRepository,
	reports ports.ReportRepository,
	history ports.HistoryRepository,
	notifications ports.NotificationRepository,
	adminLogs ports.AdminLogRepository,
	exporter ports.ReportExporter,
) *AdminUseCase {
	return &AdminUseCase{
		users:         users,
		analyses:      analyses,
		reports:       reports,
		history:       history,
		notifications: notifications,
		adminLogs:     adminLogs,
		exporter:      exporter,
	}
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, caller domain.Principal) ([]domain.UserAccount, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	accounts, err := uc.users.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return accounts, nil
}

func (uc *AdminUseCase) UserDetail(ctx context.Context, caller domain.Principal, userID string) (*domain.Profile, []domain.Analysis, []domain.Report, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, nil, nil, err
	}
	profile, err := uc.users.ProfileByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch profile: %w", err)
	}
	analyses, err := uc.analyses.ListRecent(ctx, userID, adminUserDetailLimit)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list analyses: %w", err)
	}
	reports, err := uc.reports.ListRecentByUser(ctx, userID, adminUserDetailLimit)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list reports: %w", err)
	}
	return profile, analyses, reports, nil
}

// ResetUser wipes one account's activity but keeps the account itself.
func (uc *AdminUseCase) ResetUser(ctx context.Context, caller domain.Principal, userID string) (domain.ResetCounts, error) {
	if err := requireAdmin(caller); err != nil {
		return domain.ResetCounts{}, err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return domain.ResetCounts{}, fmt.Errorf("fetch account: %w", err)
	}

	counts, err := uc.wipeActivity(ctx, userID)
	if err != nil {
		return domain.ResetCounts{}, err
	}
	uc.audit(ctx, caller, domain.AdminActionResetUserData,
		fmt.Sprintf("user %s: %d analyses, %d reports, %d history, %d notifications",
			user.Email, counts.Analyses, counts.Reports, counts.History, counts.Notifications))
	return counts, nil
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, caller domain.Principal, userID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if userID == caller.UserID {
		return domain.WrapError(domain.ErrInvalidInput, "delete user", errors.New("cannot delete your own account"))
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch account: %w", err)
	}

	if _, err := uc.wipeActivity(ctx, userID); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	uc.audit(ctx, caller, domain.AdminActionDeleteUser, user.Email)
	return nil
}

func (uc *AdminUseCase) ListReports(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]domain.ReportWithUser, domain.ReportStatistics, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, domain.ReportStatistics{}, err
	}
	reports, err := uc.reports.ListFiltered(ctx, filter)
	if err != nil {
		return nil, domain.ReportStatistics{}, fmt.Errorf("list reports: %w", err)
	}
	stats, err := uc.reports.Statistics(ctx)
	if err != nil {
		return nil, domain.ReportStatistics{}, fmt.Errorf("aggregate reports: %w", err)
	}
	return reports, stats, nil
}

func (uc *AdminUseCase) DeleteReport(ctx context.Context, caller domain.Principal, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	report, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	if err := uc.reports.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	uc.audit(ctx, caller, domain.AdminActionDeleteReport,
		fmt.Sprintf("report %s (%s)", id, report.FileName))
	return nil
}

func (uc *AdminUseCase) ExportReports(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]byte, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	reports, err := uc.reports.ListFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	sheet, err := uc.exporter.Export(reports)
	if err != nil {
		return nil, fmt.Errorf("export reports: %w", err)
	}
	uc.audit(ctx, caller, domain.AdminActionExportReports, fmt.Sprintf("%d rows", len(reports)))
	return sheet, nil
}

// ResetAll wipes every account's activity. Accounts and seeded content survive.
func (uc *AdminUseCase) ResetAll(ctx context.Context, caller domain.Principal) (domain.ResetCounts, error) {
	if err := requireAdmin(caller); err != nil {
		return domain.ResetCounts{}, err
	}

	var counts domain.ResetCounts
	var err error
	if counts.Analyses, err = uc.analyses.DeleteAll(ctx); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete analyses: %w", err)
	}
	if counts.Reports, err = uc.reports.DeleteAll(ctx); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete reports: %w", err)
	}
	if counts.History, err = uc.history.DeleteAll(ctx); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete history: %w", err)
	}
	if counts.Notifications, err = uc.notifications.DeleteAll(ctx); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete notifications: %w", err)
	}

	uc.audit(ctx, caller, domain.AdminActionResetAllData,
		fmt.Sprintf("%d analyses, %d reports, %d history, %d notifications",
			counts.Analyses, counts.Reports, counts.History, counts.Notifications))
	return counts, nil
}

func (uc *AdminUseCase) Logs(ctx context.Context, caller domain.Principal) ([]domain.AdminLog, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	logs, err := uc.adminLogs.List(ctx, adminLogsDefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	return logs, nil
}

func (uc *AdminUseCase) wipeActivity(ctx context.Context, userID string) (domain.ResetCounts, error) {
	var counts domain.ResetCounts
	var err error
	if counts.Analyses, err = uc.analyses.DeleteByUser(ctx, userID); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete analyses: %w", err)
	}
	if counts.Reports, err = uc.reports.DeleteByUser(ctx, userID); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete reports: %w", err)
	}
	if counts.History, err = uc.history.DeleteByUser(ctx, userID); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete history: %w", err)
	}
	if counts.Notifications, err = uc.notifications.DeleteByUser(ctx, userID); err != nil {
		return domain.ResetCounts{}, fmt.Errorf("delete notifications: %w", err)
	}
	return counts, nil
}

func (uc *AdminUseCase) audit(ctx context.Context, caller domain.Principal, action, details string) {
	_ = uc.adminLogs.Create(ctx, &domain.AdminLog{
		ID:         uuid.NewString(),
		AdminID:    caller.UserID,
		AdminEmail: caller.Email,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	})
}

func requireAdmin(caller domain.Principal) error {
	if !caller.IsAdmin() {
		return domain.WrapError(domain.ErrForbidden, "admin access", errors.New("admin role required"))
	}
	return nil
}
