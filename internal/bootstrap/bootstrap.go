package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apurvakhangal/unmasked/internal/auth"
	"github.com/apurvakhangal/unmasked/internal/config"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
	"github.com/apurvakhangal/unmasked/internal/core/usecase"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/detector"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/evidence"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/export/xlsx"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/newsapi"
	natsqueue "github.com/apurvakhangal/unmasked/internal/infrastructure/queue/nats"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/reportpdf"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/repository/postgres"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/resilience"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/storage/localfs"
	"github.com/apurvakhangal/unmasked/internal/observability/metrics"
)

// App wires every adapter and use case once; cmd/api and cmd/worker pick the
// pieces they serve.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue         ports.MessageQueue
	Detector      ports.Detector
	Content       ports.ContentRepository
	ProcessUC     ports.AnalysisProcessor
	WorkerMetrics *metrics.WorkerMetrics

	AuthUC      ports.AuthService
	ProfileUC   ports.ProfileService
	AnalysisUC  ports.AnalysisService
	ReportUC    ports.ReportService
	HistoryUC   ports.HistoryService
	DashboardUC ports.DashboardService
	ForumUC     ports.ForumService
	SupportUC   ports.SupportService
	AdminUC     ports.AdminService
	NewsUC      ports.NewsService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	if cfg.SeedDemoData {
		if err := postgres.Seed(ctx, db, hasher.Hash, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	users := postgres.NewUserRepository(db)
	analyses := postgres.NewAnalysisRepository(db)
	reports := postgres.NewReportRepository(db)
	history := postgres.NewHistoryRepository(db)
	notifications := postgres.NewNotificationRepository(db)
	forum := postgres.NewForumRepository(db)
	support := postgres.NewSupportRepository(db)
	content := postgres.NewContentRepository(db)
	adminLogs := postgres.NewAdminLogRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	workerMetrics := metrics.NewWorkerMetrics("worker")

	queue, err := natsqueue.New(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: executor,
		Logger:             logger,
		OnQueueLag: func(lag time.Duration) {
			workerMetrics.ObserveQueueLag("worker", lag)
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	detectorClient := detector.New(cfg.DetectorURL, cfg.DetectorModelVersion, detector.Options{
		Timeout:            cfg.DetectorTimeout,
		ResilienceExecutor: executor,
	})
	newsClient := newsapi.New(cfg.NewsAPIURL, newsapi.Options{
		Timeout:            cfg.NewsAPITimeout,
		ResilienceExecutor: executor,
	})

	renderer := reportpdf.New("Unmasked")
	exporter := xlsx.New()
	evidenceExtractor := evidence.New(cfg.StoragePath)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:         queue,
		Detector:      detectorClient,
		Content:       content,
		ProcessUC:     usecase.NewProcessAnalysisUseCase(analyses, storage, detectorClient, history, notifications),
		WorkerMetrics: workerMetrics,

		AuthUC:      usecase.NewAuthUseCase(users, hasher, tokens),
		ProfileUC:   usecase.NewProfileUseCase(users, hasher),
		AnalysisUC:  usecase.NewSubmitAnalysisUseCase(analyses, storage, queue),
		ReportUC:    usecase.NewReportUseCase(reports, renderer, cfg.DetectorModelVersion),
		HistoryUC:   usecase.NewHistoryUseCase(history),
		DashboardUC: usecase.NewDashboardUseCase(analyses, notifications),
		ForumUC:     usecase.NewForumUseCase(forum, adminLogs),
		SupportUC:   usecase.NewSupportUseCase(support, evidenceExtractor, logger),
		AdminUC:     usecase.NewAdminUseCase(users, analyses, reports, history, notifications, adminLogs, exporter),
		NewsUC:      usecase.NewNewsUseCase(newsClient),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
