package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"weddash/internal/config"
	"weddash/internal/db"
	"weddash/internal/handlers"
	"weddash/internal/jobs"
	"weddash/internal/logging"
	"weddash/internal/metrics"
	"weddash/internal/planning"
	"weddash/internal/server"
	"weddash/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Document store
	var (
		docs   store.Documents
		pinger handlers.Pinger
	)
	switch cfg.StoreBackend {
	case config.StorePostgres:
		database, err := db.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		logger.Info("migrations completed successfully")

		go database.Listen(ctx)
		docs, pinger = database, database
	case config.StoreMemory:
		logger.Warn("using in-memory document store; data is lost on restart")
		docs = store.NewMemory()
	default:
		logger.Fatal("unknown STORE_BACKEND", zap.String("store_backend", cfg.StoreBackend))
	}

	repo := planning.NewRepository(docs, logger)

	// Development seed data
	if cfg.IsDev() {
		seed, err := config.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
		if err := repo.Seed(ctx, seed); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	metrics.Init(docs, logger)

	go jobs.NewIndexSweeper(repo, cfg.IndexSweepInterval, logger).Start(ctx)

	srv := server.New(cfg, logger)
	if err := srv.RegisterRoutes(ctx, repo, pinger); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	if err := srv.Shutdown(10 * time.Second); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server exited")
}
