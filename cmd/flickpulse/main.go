package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/flickpulse/flickpulse/internal/api"
	"github.com/flickpulse/flickpulse/internal/config"
	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/flickpulse/flickpulse/internal/metrics"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/flickpulse/flickpulse/internal/scheduler"
	"github.com/flickpulse/flickpulse/internal/services/tmdb"
	"github.com/flickpulse/flickpulse/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// A relative relay base is same-origin by definition; for the
	// daemon's own metadata client that means this process.
	if strings.HasPrefix(cfg.RelayBase, "/") {
		cfg.RelayBase = "http://127.0.0.1:" + cfg.ServerPort + cfg.RelayBase
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting flickpulse")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Setup metrics
	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	// 4. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 5. Load telemetry stoplist
	stoplist, err := utils.LoadStoplist(cfg.StoplistFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load stoplist, continuing without it")
		stoplist = &utils.Stoplist{}
	} else {
		logger.Info("Stoplist loaded")
	}

	// 6. Initialize TMDB client
	tmdbClient, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize TMDB client: %w", err)
	}
	if cfg.DirectMode() {
		logger.Info("TMDB client initialized (direct mode)")
	} else {
		logger.Info("TMDB client initialized (relay mode)")
	}

	// 7. Initialize controllers
	telemetryCtrl := controllers.NewTelemetryController(db, stoplist, cfg.TrendingLimit, logger)
	debounce := time.Duration(cfg.DebounceMillis) * time.Millisecond
	searchCtrl := controllers.NewSearchController(tmdbClient, telemetryCtrl, debounce, logger)
	logger.Info("Controllers initialized")

	// 8. Initialize scheduler
	sched := scheduler.NewScheduler(searchCtrl, telemetryCtrl, cfg.TrendingRefreshMinutes, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 9. Initialize HTTP server
	server := api.NewServer(cfg, db, searchCtrl, telemetryCtrl, registry, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// Populate the trending leaderboard once the server is up
	searchCtrl.RefreshTrending()

	// 10. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("flickpulse is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("flickpulse stopped")
	return nil
}
