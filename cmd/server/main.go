package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nyaya/internal/analysis"
	"nyaya/internal/app"
	"nyaya/internal/config"
	"nyaya/internal/events"
	"nyaya/internal/handler"
	"nyaya/internal/logging"
	"nyaya/internal/metrics"
	"nyaya/internal/port"
	"nyaya/internal/repository/postgres"
	"nyaya/internal/router"
	"nyaya/internal/service"
	s3storage "nyaya/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rdb, err := app.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn("translation cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()

	orchestrator, err := app.BuildOrchestrator(ctx, cfg, rdb, logger, analysis.WithObserver(m))
	if err != nil {
		return fmt.Errorf("failed to build analysis pipeline: %w", err)
	}

	publisher := events.NewPublisher(&cfg.Kafka, logger)
	if kp, ok := publisher.(*events.KafkaPublisher); ok {
		defer kp.Close()
	}

	// Initialize repositories
	caseRepo := postgres.NewCaseRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	feedbackRepo := postgres.NewFeedbackRepo(db)
	knowledgeRepo := postgres.NewKnowledgeRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage. Backups are disabled without a bucket.
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	caseSvc := service.NewCaseService(orchestrator, caseRepo, sessionRepo, publisher, m, cfg.Analysis.MaxTextLength, logger)
	sessionSvc := service.NewSessionService(sessionRepo)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, caseRepo)
	knowledgeSvc := service.NewKnowledgeService(knowledgeRepo, logger)
	statsSvc := service.NewStatsService(statsRepo)

	maintenance := service.NewMaintenance(sessionSvc, caseRepo, storage, cfg.Maintenance, cfg.S3.PresignExpiry, m, logger)
	if err := maintenance.Start(); err != nil {
		return fmt.Errorf("failed to start maintenance jobs: %w", err)
	}

	// Initialize handlers
	handlers := router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Case:      handler.NewCaseHandler(caseSvc, feedbackSvc),
		Session:   handler.NewSessionHandler(sessionSvc),
		Knowledge: handler.NewKnowledgeHandler(knowledgeSvc),
		Stats:     handler.NewStatsHandler(statsSvc),
		Admin:     handler.NewAdminHandler(maintenance),
	}

	// Setup router
	r := router.Setup(handlers, logger, m, m.Handler(), cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	maintenance.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
