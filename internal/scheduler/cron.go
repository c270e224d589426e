package scheduler

import (
	"fmt"

	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages periodic background tasks
type Scheduler struct {
	cron           *cron.Cron
	searchCtrl     *controllers.SearchController
	telemetryCtrl  *controllers.TelemetryController
	refreshMinutes int
	logger         *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(searchCtrl *controllers.SearchController, telemetryCtrl *controllers.TelemetryController, refreshMinutes int, logger *logrus.Logger) *Scheduler {
	if refreshMinutes <= 0 {
		refreshMinutes = 10
	}
	return &Scheduler{
		cron:           cron.New(),
		searchCtrl:     searchCtrl,
		telemetryCtrl:  telemetryCtrl,
		refreshMinutes: refreshMinutes,
		logger:         logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Keep the controller's trending snapshot current
	expr := fmt.Sprintf("*/%d * * * *", s.refreshMinutes)
	_, err := s.cron.AddFunc(expr, func() {
		s.runTrendingRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add trending refresh job: %w", err)
	}

	// Every hour: log leaderboard statistics
	_, err = s.cron.AddFunc("0 * * * *", func() {
		s.runStatsLog()
	})
	if err != nil {
		return fmt.Errorf("failed to add stats job: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runTrendingRefresh() {
	s.logger.Debug("Refreshing trending leaderboard")
	s.searchCtrl.RefreshTrending()
}

func (s *Scheduler) runStatsLog() {
	terms, searches, err := s.telemetryCtrl.Stats()
	if err != nil {
		s.logger.WithError(err).Error("Failed to collect telemetry stats")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"distinct_terms": terms,
		"total_searches": searches,
	}).Info("Telemetry stats")
}
