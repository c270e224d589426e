package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/flickpulse/flickpulse/internal/api/handlers"
	"github.com/flickpulse/flickpulse/internal/api/middleware"
	"github.com/flickpulse/flickpulse/internal/config"
	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server        *http.Server
	db            *models.Database
	searchCtrl    *controllers.SearchController
	telemetryCtrl *controllers.TelemetryController
	registry      *prometheus.Registry
	logger        *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, searchCtrl *controllers.SearchController, telemetryCtrl *controllers.TelemetryController, registry *prometheus.Registry, logger *logrus.Logger) *Server {
	s := &Server{
		db:            db,
		searchCtrl:    searchCtrl,
		telemetryCtrl: telemetryCtrl,
		registry:      registry,
		logger:        logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux, cfg)

	s.server = &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     middleware.Logging(mux, logger),
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	// Telemetry status
	statusHandler := handlers.NewStatusHandler(s.telemetryCtrl, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Upstream relay
	relayHandler := handlers.NewRelayHandler(cfg, s.logger)
	mux.HandleFunc("/api/tmdb", relayHandler.ServeHTTP)

	// Catalog search and discovery
	searchHandler := handlers.NewSearchHandler(s.searchCtrl, s.logger)
	mux.HandleFunc("/api/search", searchHandler.ServeHTTP)

	// Trending leaderboard
	trendingHandler := handlers.NewTrendingHandler(s.telemetryCtrl, s.logger)
	mux.HandleFunc("/api/trending", trendingHandler.ServeHTTP)

	// UI preferences
	preferencesHandler := handlers.NewPreferencesHandler(s.db, s.logger)
	mux.HandleFunc("/api/preferences", preferencesHandler.ServeHTTP)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
