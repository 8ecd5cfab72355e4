package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nyaya/internal/app"
	"nyaya/internal/cli"
	"nyaya/internal/config"
	"nyaya/internal/logging"
	"nyaya/internal/repository/postgres"
	"nyaya/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr at warn level by default so report output stays clean.
	cfg.Log.Format = "console"
	cfg.Log.Output = "stderr"
	if os.Getenv("NYAYA_LOG_LEVEL") == "" {
		cfg.Log.Level = "warn"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps := cli.Dependencies{
		Analyzer: func(ctx context.Context) (service.CaseAnalyzer, error) {
			rdb, err := app.NewRedisClient(ctx, &cfg.Redis)
			if err != nil {
				logger.Warn("translation cache disabled", zap.Error(err))
			}
			return app.BuildOrchestrator(ctx, cfg, rdb, logger)
		},
		Seeder: func(ctx context.Context) (cli.Seeder, func(), error) {
			db, err := postgres.NewDB(&cfg.DB)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
			}
			svc := service.NewKnowledgeService(postgres.NewKnowledgeRepo(db), logger)
			return svc, func() { _ = db.Close() }, nil
		},
	}

	return cli.NewRootCommand(deps).ExecuteContext(context.Background())
}
