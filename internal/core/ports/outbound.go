package ports

import (
	"context"
	"io"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	ListWithStats(ctx context.Context) ([]domain.UserAccount, error)
	ProfileByID(ctx context.Context, id string) (*domain.Profile, error)
}

// AnalysisRepository persists uploaded videos and their pipeline state.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	GetByID(ctx context.Context, id string) (*domain.Analysis, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Analysis, error)
	// ListRecent returns the newest analyses; an empty userID means fleet-wide.
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Analysis, error)
	UpdateStatus(ctx context.Context, id string, status domain.AnalysisStatus, errMessage string) error
	SaveVerdict(ctx context.Context, id string, verdict domain.Verdict, processingSeconds float64) error
	// Summary aggregates dashboard counters; an empty userID means fleet-wide.
	Summary(ctx context.Context, userID string) (domain.AnalysisSummary, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// ReportRepository persists saved detection reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Report, error)
	ListFiltered(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportWithUser, error)
	Statistics(ctx context.Context) (domain.ReportStatistics, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// HistoryRepository persists the per-user activity feed.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// NotificationRepository persists user and broadcast notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// ForumRepository persists community posts and comments.
type ForumRepository interface {
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.ForumPost, error)
	CreatePost(ctx context.Context, post *domain.ForumPost) error
	GetPost(ctx context.Context, id string) (*domain.ForumPost, error)
	LikePost(ctx context.Context, id string) (int, error)
	DeletePost(ctx context.Context, id string) error
	ListComments(ctx context.Context, postID string) ([]domain.ForumComment, error)
	CreateComment(ctx context.Context, comment *domain.ForumComment) error
	GetComment(ctx context.Context, id string) (*domain.ForumComment, error)
	DeleteComment(ctx context.Context, id string) error
}

// SupportRepository persists support-center tickets and newsletter signups.
type SupportRepository interface {
	CreateExpertRequest(ctx context.Context, request *domain.ExpertRequest) error
	CreateComplaint(ctx context.Context, complaint *domain.Complaint) error
	GetComplaintByID(ctx context.Context, id string) (*domain.Complaint, error)
	LatestComplaintByEmail(ctx context.Context, email string) (*domain.Complaint, error)
	HasActiveSubscription(ctx context.Context, email string) (bool, error)
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
}

// ContentRepository reads seeded editorial content.
type ContentRepository interface {
	ListBlogs(ctx context.Context) ([]domain.Blog, error)
	GetBlog(ctx context.Context, id string) (*domain.Blog, error)
	ListActiveTips(ctx context.Context) ([]domain.DailyTip, error)
}

// AdminLogRepository persists the admin action audit trail.
type AdminLogRepository interface {
	Create(ctx context.Context, entry *domain.AdminLog) error
	List(ctx context.Context, limit int) ([]domain.AdminLog, error)
}

// ObjectStorage stores uploaded video files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes analysis jobs between api and worker.
type MessageQueue interface {
	PublishAnalysisSubmitted(ctx context.Context, analysisID string) error
	SubscribeAnalysisSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// Detector calls the external inference service. The open callback re-reads
// the stored file so retries do not depend on a consumed stream.
type Detector interface {
	Predict(ctx context.Context, filename string, open func() (io.ReadCloser, error)) (domain.Verdict, error)
	Healthy(ctx context.Context) bool
}

// NewsProvider proxies the upstream news API.
type NewsProvider interface {
	Everything(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error)
}

// EvidenceExtractor pulls a plain-text excerpt out of an uploaded evidence file.
type EvidenceExtractor interface {
	Excerpt(ctx context.Context, key string) (string, error)
}

// ReportRenderer renders one report row as a downloadable PDF.
type ReportRenderer interface {
	Render(report *domain.Report, generatedFor string) ([]byte, error)
}

// ReportExporter renders an admin report listing as a spreadsheet.
type ReportExporter interface {
	Export(reports []domain.ReportWithUser) ([]byte, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints and validates bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (domain.Principal, error)
}
