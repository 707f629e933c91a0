package ports

import (
	"context"
	"io"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Verify(ctx context.Context, token string) (domain.Principal, error)
}

// ProfileService reads and updates the caller's own account.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID, name, password, currentPassword string) error
}

// AnalysisService is the inbound contract for upload orchestration and reads.
type AnalysisService interface {
	Submit(ctx context.Context, caller domain.Principal, filename string, body io.Reader) (*domain.Analysis, error)
	GetByID(ctx context.Context, caller domain.Principal, id string) (*domain.Analysis, error)
	List(ctx context.Context, caller domain.Principal) ([]domain.Analysis, error)
}

// AnalysisProcessor is the inbound contract for asynchronous classification.
type AnalysisProcessor interface {
	ProcessByID(ctx context.Context, analysisID string) error
}

// ReportService persists, lists and renders detection reports.
type ReportService interface {
	Create(ctx context.Context, caller domain.Principal, report *domain.Report) (*domain.Report, error)
	List(ctx context.Context, caller domain.Principal) ([]domain.Report, error)
	RenderPDF(ctx context.Context, caller domain.Principal, id string) ([]byte, string, error)
}

// HistoryService records and lists user actions.
type HistoryService interface {
	Record(ctx context.Context, caller domain.Principal, entry *domain.HistoryEntry) (*domain.HistoryEntry, error)
	List(ctx context.Context, caller domain.Principal) ([]domain.HistoryEntry, error)
}

// DashboardService aggregates the landing-page view.
type DashboardService interface {
	Summary(ctx context.Context, caller domain.Principal) (*domain.Dashboard, error)
	Notifications(ctx context.Context, caller domain.Principal) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, caller domain.Principal, id string) error
}

// ForumService handles community posts and comments.
type ForumService interface {
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.ForumPost, error)
	CreatePost(ctx context.Context, caller domain.Principal, topic, content string) (*domain.ForumPost, error)
	LikePost(ctx context.Context, id string) (int, error)
	DeletePost(ctx context.Context, caller domain.Principal, id string) error
	ListComments(ctx context.Context, postID string) ([]domain.ForumComment, error)
	CreateComment(ctx context.Context, caller domain.Principal, postID, content string) (*domain.ForumComment, error)
	DeleteComment(ctx context.Context, caller domain.Principal, id string) error
}

// SupportService handles the support center.
type SupportService interface {
	CreateExpertRequest(ctx context.Context, caller domain.Principal, request *domain.ExpertRequest) (*domain.ExpertRequest, error)
	CreateComplaint(ctx context.Context, caller domain.Principal, complaint *domain.Complaint) (*domain.Complaint, error)
	TrackComplaint(ctx context.Context, id, email string) (*domain.Complaint, error)
	Subscribe(ctx context.Context, caller domain.Principal, email string) (created bool, err error)
}

// AdminService backs the admin console; every method requires an admin caller.
type AdminService interface {
	ListUsers(ctx context.Context, caller domain.Principal) ([]domain.UserAccount, error)
	UserDetail(ctx context.Context, caller domain.Principal, userID string) (*domain.Profile, []domain.Analysis, []domain.Report, error)
	ResetUser(ctx context.Context, caller domain.Principal, userID string) (domain.ResetCounts, error)
	DeleteUser(ctx context.Context, caller domain.Principal, userID string) error
	ListReports(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]domain.ReportWithUser, domain.ReportStatistics, error)
	DeleteReport(ctx context.Context, caller domain.Principal, id string) error
	ExportReports(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]byte, error)
	ResetAll(ctx context.Context, caller domain.Principal) (domain.ResetCounts, error)
	Logs(ctx context.Context, caller domain.Principal) ([]domain.AdminLog, error)
}

// NewsService proxies the upstream news API for the SPA.
type NewsService interface {
	Fetch(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error)
}
