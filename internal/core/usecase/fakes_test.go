package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// In-memory fakes shared by the use case tests. Each fake covers the full
// outbound interface so one helper serves every suite.

type userRepoFake struct {
	users     map[string]*domain.User
	createErr error
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{users: make(map[string]*domain.User)}
}

func (f *userRepoFake) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *userRepoFake) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get user", errors.New("no row"))
	}
	cp := *user
	return &cp, nil
}

func (f *userRepoFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get user", errors.New("no row"))
}

func (f *userRepoFake) UpdateName(_ context.Context, id, name string) error {
	user, ok := f.users[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "update name", errors.New("no row"))
	}
	user.Name = name
	return nil
}

func (f *userRepoFake) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "update password", errors.New("no row"))
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *userRepoFake) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete user", errors.New("no row"))
	}
	delete(f.users, id)
	return nil
}

func (f *userRepoFake) ListWithStats(context.Context) ([]domain.UserAccount, error) {
	out := make([]domain.UserAccount, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, domain.UserAccount{User: *user})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *userRepoFake) ProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{User: *user}, nil
}

type analysisRepoFake struct {
	analyses map[string]*domain.Analysis
}

func newAnalysisRepoFake() *analysisRepoFake {
	return &analysisRepoFake{analyses: make(map[string]*domain.Analysis)}
}

func (f *analysisRepoFake) Create(_ context.Context, analysis *domain.Analysis) error {
	cp := *analysis
	f.analyses[analysis.ID] = &cp
	return nil
}

func (f *analysisRepoFake) GetByID(_ context.Context, id string) (*domain.Analysis, error) {
	analysis, ok := f.analyses[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get analysis", errors.New("no row"))
	}
	cp := *analysis
	return &cp, nil
}

func (f *analysisRepoFake) ListByUser(_ context.Context, userID string) ([]domain.Analysis, error) {
	var out []domain.Analysis
	for _, analysis := range f.analyses {
		if analysis.UserID == userID {
			out = append(out, *analysis)
		}
	}
	return out, nil
}

func (f *analysisRepoFake) ListRecent(_ context.Context, userID string, limit int) ([]domain.Analysis, error) {
	var out []domain.Analysis
	for _, analysis := range f.analyses {
		if userID == "" || analysis.UserID == userID {
			out = append(out, *analysis)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *analysisRepoFake) UpdateStatus(_ context.Context, id string, status domain.AnalysisStatus, errMessage string) error {
	analysis, ok := f.analyses[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "update status", errors.New("no row"))
	}
	analysis.Status = status
	analysis.Error = errMessage
	return nil
}

func (f *analysisRepoFake) SaveVerdict(_ context.Context, id string, verdict domain.Verdict, processingSeconds float64) error {
	analysis, ok := f.analyses[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "save verdict", errors.New("no row"))
	}
	analysis.Status = domain.AnalysisCompleted
	analysis.Prediction = verdict.Prediction
	analysis.Confidence = verdict.Confidence
	analysis.FakeProbability = verdict.FakeProbability
	analysis.RealProbability = verdict.RealProbability
	analysis.FramesAnalyzed = verdict.FramesAnalyzed
	analysis.ProcessingSeconds = processingSeconds
	return nil
}

func (f *analysisRepoFake) Summary(_ context.Context, userID string) (domain.AnalysisSummary, error) {
	var summary domain.AnalysisSummary
	for _, analysis := range f.analyses {
		if userID != "" && analysis.UserID != userID {
			continue
		}
		if analysis.Status != domain.AnalysisCompleted {
			continue
		}
		summary.TotalAnalyses++
		if analysis.Prediction == domain.PredictionFake {
			summary.DeepfakesDetected++
		}
	}
	return summary, nil
}

func (f *analysisRepoFake) DeleteByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for id, analysis := range f.analyses {
		if analysis.UserID == userID {
			delete(f.analyses, id)
			count++
		}
	}
	return count, nil
}

func (f *analysisRepoFake) DeleteAll(context.Context) (int, error) {
	count := len(f.analyses)
	f.analyses = make(map[string]*domain.Analysis)
	return count, nil
}

type reportRepoFake struct {
	reports map[string]*domain.Report
}

func newReportRepoFake() *reportRepoFake {
	return &reportRepoFake{reports: make(map[string]*domain.Report)}
}

func (f *reportRepoFake) Create(_ context.Context, report *domain.Report) error {
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *reportRepoFake) GetByID(_ context.Context, id string) (*domain.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get report", errors.New("no row"))
	}
	cp := *report
	return &cp, nil
}

func (f *reportRepoFake) ListByUser(_ context.Context, userID string) ([]domain.Report, error) {
	var out []domain.Report
	for _, report := range f.reports {
		if report.UserID == userID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (f *reportRepoFake) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Report, error) {
	out, err := f.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *reportRepoFake) ListFiltered(_ context.Context, filter domain.ReportFilter) ([]domain.ReportWithUser, error) {
	var out []domain.ReportWithUser
	for _, report := range f.reports {
		if filter.Result != "" && report.Prediction != filter.Result {
			continue
		}
		if filter.UserID != "" && report.UserID != filter.UserID {
			continue
		}
		out = append(out, domain.ReportWithUser{Report: *report})
	}
	return out, nil
}

func (f *reportRepoFake) Statistics(context.Context) (domain.ReportStatistics, error) {
	stats := domain.ReportStatistics{TotalReports: len(f.reports)}
	for _, report := range f.reports {
		if report.Prediction == domain.PredictionFake {
			stats.FakeReports++
		} else {
			stats.RealReports++
		}
	}
	return stats, nil
}

func (f *reportRepoFake) Delete(_ context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete report", errors.New("no row"))
	}
	delete(f.reports, id)
	return nil
}

func (f *reportRepoFake) DeleteByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for id, report := range f.reports {
		if report.UserID == userID {
			delete(f.reports, id)
			count++
		}
	}
	return count, nil
}

func (f *reportRepoFake) DeleteAll(context.Context) (int, error) {
	count := len(f.reports)
	f.reports = make(map[string]*domain.Report)
	return count, nil
}

type historyRepoFake struct {
	entries []domain.HistoryEntry
	err     error
}

func (f *historyRepoFake) Create(_ context.Context, entry *domain.HistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *historyRepoFake) ListByUser(_ context.Context, userID string) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	for _, entry := range f.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *historyRepoFake) DeleteByUser(_ context.Context, userID string) (int, error) {
	kept := f.entries[:0]
	count := 0
	for _, entry := range f.entries {
		if entry.UserID == userID {
			count++
			continue
		}
		kept = append(kept, entry)
	}
	f.entries = kept
	return count, nil
}

func (f *historyRepoFake) DeleteAll(context.Context) (int, error) {
	count := len(f.entries)
	f.entries = nil
	return count, nil
}

type notificationRepoFake struct {
	notifications []domain.Notification
}

func (f *notificationRepoFake) Create(_ context.Context, notification *domain.Notification) error {
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *notificationRepoFake) ListForUser(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.Broadcast() || n.UserID == userID {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *notificationRepoFake) MarkRead(_ context.Context, id, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.WrapError(domain.ErrNotFound, "mark read", errors.New("no row"))
}

func (f *notificationRepoFake) DeleteByUser(_ context.Context, userID string) (int, error) {
	kept := f.notifications[:0]
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID {
			count++
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return count, nil
}

func (f *notificationRepoFake) DeleteAll(context.Context) (int, error) {
	count := len(f.notifications)
	f.notifications = nil
	return count, nil
}

type forumRepoFake struct {
	posts    map[string]*domain.ForumPost
	comments map[string]*domain.ForumComment
}

func newForumRepoFake() *forumRepoFake {
	return &forumRepoFake{
		posts:    make(map[string]*domain.ForumPost),
		comments: make(map[string]*domain.ForumComment),
	}
}

func (f *forumRepoFake) ListPosts(_ context.Context, filter domain.PostFilter) ([]domain.ForumPost, error) {
	var out []domain.ForumPost
	for _, post := range f.posts {
		if filter.Topic != "" && post.Topic != filter.Topic {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(post.Content), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *post)
	}
	return out, nil
}

func (f *forumRepoFake) CreatePost(_ context.Context, post *domain.ForumPost) error {
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *forumRepoFake) GetPost(_ context.Context, id string) (*domain.ForumPost, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get post", errors.New("no row"))
	}
	cp := *post
	return &cp, nil
}

func (f *forumRepoFake) LikePost(_ context.Context, id string) (int, error) {
	post, ok := f.posts[id]
	if !ok {
		return 0, domain.WrapError(domain.ErrNotFound, "like post", errors.New("no row"))
	}
	post.Likes++
	return post.Likes, nil
}

func (f *forumRepoFake) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete post", errors.New("no row"))
	}
	delete(f.posts, id)
	return nil
}

func (f *forumRepoFake) ListComments(_ context.Context, postID string) ([]domain.ForumComment, error) {
	var out []domain.ForumComment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (f *forumRepoFake) CreateComment(_ context.Context, comment *domain.ForumComment) error {
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *forumRepoFake) GetComment(_ context.Context, id string) (*domain.ForumComment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get comment", errors.New("no row"))
	}
	cp := *comment
	return &cp, nil
}

func (f *forumRepoFake) DeleteComment(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete comment", errors.New("no row"))
	}
	delete(f.comments, id)
	return nil
}

type supportRepoFake struct {
	expertRequests []domain.ExpertRequest
	complaints     map[string]*domain.Complaint
	subscriptions  map[string]bool
}

func newSupportRepoFake() *supportRepoFake {
	return &supportRepoFake{
		complaints:    make(map[string]*domain.Complaint),
		subscriptions: make(map[string]bool),
	}
}

func (f *supportRepoFake) CreateExpertRequest(_ context.Context, request *domain.ExpertRequest) error {
	f.expertRequests = append(f.expertRequests, *request)
	return nil
}

func (f *supportRepoFake) CreateComplaint(_ context.Context, complaint *domain.Complaint) error {
	cp := *complaint
	f.complaints[complaint.ID] = &cp
	return nil
}

func (f *supportRepoFake) GetComplaintByID(_ context.Context, id string) (*domain.Complaint, error) {
	complaint, ok := f.complaints[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get complaint", errors.New("no row"))
	}
	cp := *complaint
	return &cp, nil
}

func (f *supportRepoFake) LatestComplaintByEmail(_ context.Context, email string) (*domain.Complaint, error) {
	var latest *domain.Complaint
	for _, complaint := range f.complaints {
		if complaint.Email != email {
			continue
		}
		if latest == nil || complaint.CreatedAt.After(latest.CreatedAt) {
			latest = complaint
		}
	}
	if latest == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "get complaint", errors.New("no row"))
	}
	cp := *latest
	return &cp, nil
}

func (f *supportRepoFake) HasActiveSubscription(_ context.Context, email string) (bool, error) {
	return f.subscriptions[email], nil
}

func (f *supportRepoFake) CreateSubscription(_ context.Context, sub *domain.Subscription) error {
	f.subscriptions[sub.Email] = true
	return nil
}

type adminLogRepoFake struct {
	logs []domain.AdminLog
}

func (f *adminLogRepoFake) Create(_ context.Context, entry *domain.AdminLog) error {
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *adminLogRepoFake) List(_ context.Context, limit int) ([]domain.AdminLog, error) {
	out := f.logs
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type storageFake struct {
	files   map[string][]byte
	saveErr error
	openErr error
}

func newStorageFake() *storageFake {
	return &storageFake{files: make(map[string][]byte)}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.files[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	raw, ok := f.files[key]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "open object", fmt.Errorf("no object %s", key))
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (f *storageFake) Remove(_ context.Context, key string) error {
	delete(f.files, key)
	return nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishAnalysisSubmitted(_ context.Context, analysisID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, analysisID)
	return nil
}

func (f *queueFake) SubscribeAnalysisSubmitted(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type detectorFake struct {
	verdict domain.Verdict
	err     error
	calls   int
}

func (f *detectorFake) Predict(_ context.Context, _ string, open func() (io.ReadCloser, error)) (domain.Verdict, error) {
	f.calls++
	if open != nil {
		rc, err := open()
		if err != nil {
			return domain.Verdict{}, err
		}
		_, _ = io.Copy(io.Discard, rc)
		_ = rc.Close()
	}
	if f.err != nil {
		return domain.Verdict{}, f.err
	}
	return f.verdict, nil
}

func (f *detectorFake) Healthy(context.Context) bool { return f.err == nil }

type hasherFake struct{}

func (hasherFake) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (hasherFake) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type tokenIssuerFake struct{}

func (tokenIssuerFake) Issue(user *domain.User) (string, error) {
	return "token-" + user.ID, nil
}

func (tokenIssuerFake) Verify(token string) (domain.Principal, error) {
	id := strings.TrimPrefix(token, "token-")
	if id == token {
		return domain.Principal{}, domain.WrapError(domain.ErrUnauthorized, "verify token", errors.New("bad token"))
	}
	return domain.Principal{UserID: id, Role: domain.RoleUser}, nil
}

type rendererFake struct {
	err error
}

func (f *rendererFake) Render(report *domain.Report, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF " + report.ID), nil
}

type exporterFake struct {
	rows int
}

func (f *exporterFake) Export(reports []domain.ReportWithUser) ([]byte, error) {
	f.rows = len(reports)
	return []byte("xlsx"), nil
}

type evidenceFake struct {
	excerpt string
	err     error
}

func (f *evidenceFake) Excerpt(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.excerpt, nil
}

type newsProviderFake struct {
	query  domain.NewsQuery
	apiKey string
	result *domain.NewsResult
	err    error
}

func (f *newsProviderFake) Everything(_ context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error) {
	f.apiKey = apiKey
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.NewsResult{}, nil
}
