package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/apurvakhangal/unmasked/internal/adapters/http"
	"github.com/apurvakhangal/unmasked/internal/bootstrap"
	"github.com/apurvakhangal/unmasked/internal/config"
	"github.com/apurvakhangal/unmasked/internal/observability/logging"
	"github.com/apurvakhangal/unmasked/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	router, err := httpadapter.NewRouter(cfg, httpadapter.Services{
		Auth:      app.AuthUC,
		Profile:   app.ProfileUC,
		Analyses:  app.AnalysisUC,
		Reports:   app.ReportUC,
		History:   app.HistoryUC,
		Dashboard: app.DashboardUC,
		Forum:     app.ForumUC,
		Support:   app.SupportUC,
		Admin:     app.AdminUC,
		News:      app.NewsUC,
		Content:   app.Content,
		Detector:  app.Detector,
	}, httpMetrics, logger)
	if err != nil {
		logger.Error("router_init_failed", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router.Handler(),
		// Large video uploads need a long read window; headers stay snappy.
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Minute,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", "error", err)
	}
}
