package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/apurvakhangal/unmasked/internal/config"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
	"github.com/apurvakhangal/unmasked/internal/observability/metrics"
)

const backpressureWait = 2 * time.Second

// Services groups the inbound ports the REST surface is built from.
type Services struct {
	Auth      ports.AuthService
	Profile   ports.ProfileService
	Analyses  ports.AnalysisService
	Reports   ports.ReportService
	History   ports.HistoryService
	Dashboard ports.DashboardService
	Forum     ports.ForumService
	Support   ports.SupportService
	Admin     ports.AdminService
	News      ports.NewsService
	Content   ports.ContentRepository
	Detector  ports.Detector
}

type Router struct {
	services    Services
	metrics     *metrics.HTTPServerMetrics
	logger      *slog.Logger
	openapiJSON []byte

	maxUploadSize  int64
	rateLimitRPS   int
	rateLimitBurst int
	maxInFlight    int
	newsAPIKey     string
}

func NewRouter(cfg config.Config, services Services, m *metrics.HTTPServerMetrics, logger *slog.Logger) (*Router, error) {
	openapiJSON, err := loadOpenAPIJSON()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		services:       services,
		metrics:        m,
		logger:         logger,
		openapiJSON:    openapiJSON,
		maxUploadSize:  cfg.MaxUploadSize,
		rateLimitRPS:   cfg.APIRateLimitRPS,
		rateLimitBurst: cfg.APIRateLimitBurst,
		maxInFlight:    cfg.APIMaxInFlight,
		newsAPIKey:     cfg.NewsAPIKey,
	}, nil
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	// handle instruments each route with its registration pattern so metric
	// labels stay low-cardinality.
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, rt.instrument(pattern, h))
	}

	handle("GET /healthz", http.HandlerFunc(rt.healthz))
	handle("GET /metrics", rt.metricsHandler())
	handle("GET /api/v1/openapi.json", http.HandlerFunc(rt.serveOpenAPI))

	handle("POST /api/v1/auth/register", http.HandlerFunc(rt.register))
	handle("POST /api/v1/auth/login", http.HandlerFunc(rt.login))
	handle("POST /api/v1/auth/verify", http.HandlerFunc(rt.verifyToken))
	handle("GET /api/v1/profile", rt.authenticated(rt.getProfile))
	handle("PUT /api/v1/profile", rt.authenticated(rt.updateProfile))

	handle("POST /api/v1/analyses", rt.authenticated(rt.submitAnalysis))
	handle("GET /api/v1/analyses", rt.authenticated(rt.listAnalyses))
	handle("GET /api/v1/analyses/{id}", rt.authenticated(rt.getAnalysis))

	handle("POST /api/v1/reports", rt.authenticated(rt.createReport))
	handle("GET /api/v1/reports", rt.authenticated(rt.listReports))
	handle("GET /api/v1/reports/{id}/pdf", rt.authenticated(rt.downloadReportPDF))

	handle("POST /api/v1/history", rt.authenticated(rt.recordHistory))
	handle("GET /api/v1/history", rt.authenticated(rt.listHistory))

	handle("GET /api/v1/dashboard", rt.authenticated(rt.dashboard))
	handle("GET /api/v1/notifications", rt.authenticated(rt.listNotifications))
	handle("PATCH /api/v1/notifications/{id}", rt.authenticated(rt.markNotificationRead))

	handle("GET /api/v1/news", http.HandlerFunc(rt.fetchNews))
	handle("GET /api/v1/blogs", http.HandlerFunc(rt.listBlogs))
	handle("GET /api/v1/blogs/{id}", http.HandlerFunc(rt.getBlog))
	handle("GET /api/v1/tips", http.HandlerFunc(rt.listTips))

	handle("GET /api/v1/forum/posts", http.HandlerFunc(rt.listForumPosts))
	handle("POST /api/v1/forum/posts", rt.authenticated(rt.createForumPost))
	handle("PUT /api/v1/forum/posts/{id}/like", rt.authenticated(rt.likeForumPost))
	handle("DELETE /api/v1/forum/posts/{id}", rt.authenticated(rt.deleteForumPost))
	handle("GET /api/v1/forum/posts/{id}/comments", http.HandlerFunc(rt.listForumComments))
	handle("POST /api/v1/forum/posts/{id}/comments", rt.authenticated(rt.createForumComment))
	handle("DELETE /api/v1/forum/comments/{id}", rt.authenticated(rt.deleteForumComment))

	handle("POST /api/v1/support/expert-requests", rt.authenticated(rt.createExpertRequest))
	handle("POST /api/v1/support/complaints", rt.authenticated(rt.createComplaint))
	handle("GET /api/v1/support/complaints/track", http.HandlerFunc(rt.trackComplaint))
	handle("POST /api/v1/support/subscriptions", http.HandlerFunc(rt.subscribe))

	handle("GET /api/v1/admin/users", rt.authenticated(rt.adminListUsers))
	handle("GET /api/v1/admin/users/{id}", rt.authenticated(rt.adminUserDetail))
	handle("POST /api/v1/admin/users/{id}/reset", rt.authenticated(rt.adminResetUser))
	handle("DELETE /api/v1/admin/users/{id}", rt.authenticated(rt.adminDeleteUser))
	handle("GET /api/v1/admin/reports", rt.authenticated(rt.adminListReports))
	handle("GET /api/v1/admin/reports/export", rt.authenticated(rt.adminExportReports))
	handle("DELETE /api/v1/admin/reports/{id}", rt.authenticated(rt.adminDeleteReport))
	handle("POST /api/v1/admin/reset", rt.authenticated(rt.adminResetAll))
	handle("GET /api/v1/admin/logs", rt.authenticated(rt.adminLogs))

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.maxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = accessLogMiddleware(rt.logger, handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) instrument(pattern string, next http.Handler) http.Handler {
	if rt.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		rt.metrics.RequestStarted()
		defer rt.metrics.RequestFinished()

		next.ServeHTTP(recorder, r)

		rt.metrics.ObserveRequest("api", r.Method, pattern, recorder.status, time.Since(start))
	})
}

func (rt *Router) metricsHandler() http.Handler {
	if rt.metrics == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics disabled", http.StatusNotFound)
		})
	}
	return rt.metrics.Handler()
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	detectorUp := false
	if rt.services.Detector != nil {
		detectorUp = rt.services.Detector.Healthy(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"detector": detectorUp,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}
