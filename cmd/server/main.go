package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/api"
	"github.com/wojciechlas/blendsphere-srs/internal/config"
	"github.com/wojciechlas/blendsphere-srs/internal/db"
	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/repository/sqlite"
	"github.com/wojciechlas/blendsphere-srs/internal/services"
	"github.com/wojciechlas/blendsphere-srs/internal/session"
	"github.com/wojciechlas/blendsphere-srs/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("BlendSphere SRS Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("new_cards_per_day=%d", cfg.NewCardsPerDay)
	log.Debug("forecast_horizon_days=%d", cfg.ForecastHorizonDays)
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	cardRepo := sqlite.NewCardRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Background persistence
	historyPool := worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)

	// Services
	manager := session.NewManager(cfg.NewCardsPerDay)
	statsService := services.NewStatsService(cardRepo, statsRepo)
	reviewService := services.NewReviewService(cardRepo, sessionRepo, statsService, manager, historyPool)
	cardService := services.NewCardService(cardRepo, deckRepo)

	srv := api.NewServer(reviewService, statsService, cardService, cfg.ForecastHorizonDays)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	historyPool.Start(ctx)

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

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending history writes before closing the database.
	log.Debug("stopping history pool")
	historyPool.Stop()

	log.Info("===========================================")
	log.Info("BlendSphere SRS Server Stopped")
	log.Info("===========================================")
}
