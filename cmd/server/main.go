package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmello/typetrack/internal/api"
	"github.com/dmello/typetrack/internal/config"
	"github.com/dmello/typetrack/internal/db"
	"github.com/dmello/typetrack/internal/jobs"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/repository/sqlite"
	"github.com/dmello/typetrack/internal/services"
	"github.com/dmello/typetrack/internal/session"
	"github.com/dmello/typetrack/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("TypeTrack Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)
	log.Debug("history_page_size=%d", cfg.HistoryPageSize)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("import_batch_size=%d", cfg.ImportBatchSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	userRepo := sqlite.NewUserRepository(database.DB)
	testRepo := sqlite.NewTestRepository(database.DB)
	charRepo := sqlite.NewCharacterStatsRepository(database.DB)

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	srv := &api.Server{
		DB:                 database,
		UserService:        services.NewUserService(userRepo),
		TestService:        services.NewTestService(userRepo, testRepo, charRepo, sessions, cfg.HistoryPageSize),
		AnalyticsService:   services.NewAnalyticsService(userRepo, charRepo, sessions),
		LeaderboardService: services.NewLeaderboardService(testRepo, cfg.LeaderboardLimit, cfg.LeaderboardMax),
		ImportService:      services.NewImportService(userRepo, testRepo, importPool, cfg.ImportBatchSize),
		Config:             &cfg,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	scheduler := jobs.New(sessions)
	if err := scheduler.Start(time.Minute); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	scheduler.Stop()

	log.Debug("stopping import pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	importPool.Stop()

	log.Info("shutdown complete")
}
