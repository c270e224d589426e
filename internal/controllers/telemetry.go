package controllers

import (
	"github.com/flickpulse/flickpulse/internal/metrics"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/flickpulse/flickpulse/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// TelemetryController owns the search-count records: increment-or-create
// per term, and the trending leaderboard read.
//
// Every failure here is soft: telemetry must never break the search
// path, so errors are logged and reported in the result, not returned.
type TelemetryController struct {
	db       *models.Database
	stoplist *utils.Stoplist
	limit    int
	logger   *logrus.Logger
}

// IncrementResult reports what an increment did
type IncrementResult struct {
	Success bool
	Outcome models.IncrementOutcome
	Message string
}

// NewTelemetryController creates a new telemetry controller
func NewTelemetryController(db *models.Database, stoplist *utils.Stoplist, trendingLimit int, logger *logrus.Logger) *TelemetryController {
	if trendingLimit <= 0 {
		trendingLimit = 5
	}
	return &TelemetryController{
		db:       db,
		stoplist: stoplist,
		limit:    trendingLimit,
		logger:   logger,
	}
}

// IncrementSearch bumps the counter for a search term, creating the
// record on first sight. The reference media fields are overwritten on
// every call with the first-ranked result of the triggering search.
//
// The lookup and the write are not one transaction: two concurrent
// increments for the same term can lose one count. Accepted, the
// counters are approximate.
func (c *TelemetryController) IncrementSearch(term string, reference models.MediaItem) IncrementResult {
	if matched, entry := c.stoplist.Contains(term); matched {
		c.logger.WithFields(logrus.Fields{
			"term":  term,
			"entry": entry,
		}).Debug("Search term on stoplist, not counted")
		metrics.TelemetryIncrementsTotal.WithLabelValues(string(models.OutcomeSkipped)).Inc()
		return IncrementResult{Success: true, Outcome: models.OutcomeSkipped}
	}

	record, err := c.db.GetSearchRecordByTerm(term)
	switch {
	case err == nil:
		record.Count++
		record.MediaID = reference.ID
		record.PosterURL = reference.PosterURL
		if err := c.db.UpdateSearchRecord(record); err != nil {
			return c.softFail("failed to update search record", term, err)
		}

		c.logger.WithFields(logrus.Fields{
			"term":  term,
			"count": record.Count,
		}).Debug("Search count updated")
		metrics.TelemetryIncrementsTotal.WithLabelValues(string(models.OutcomeUpdated)).Inc()
		return IncrementResult{Success: true, Outcome: models.OutcomeUpdated}

	case err == bolthold.ErrNotFound:
		record := &models.SearchRecord{
			SearchTerm: term,
			Count:      1,
			MediaID:    reference.ID,
			PosterURL:  reference.PosterURL,
		}
		if err := c.db.CreateSearchRecord(record); err != nil {
			return c.softFail("failed to create search record", term, err)
		}

		c.logger.WithField("term", term).Debug("Search record created")
		metrics.TelemetryIncrementsTotal.WithLabelValues(string(models.OutcomeCreated)).Inc()
		return IncrementResult{Success: true, Outcome: models.OutcomeCreated}

	default:
		return c.softFail("failed to look up search record", term, err)
	}
}

// TrendingRecords returns the top records by count descending, at most
// the configured leaderboard size
func (c *TelemetryController) TrendingRecords() ([]*models.SearchRecord, error) {
	return c.db.TopSearchRecords(c.limit)
}

// Trending is the error-swallowing variant for callers that must never
// fail: any store error yields an empty leaderboard.
func (c *TelemetryController) Trending() []*models.SearchRecord {
	records, err := c.TrendingRecords()
	if err != nil {
		c.logger.WithError(err).Error("Failed to load trending records")
		return []*models.SearchRecord{}
	}
	return records
}

// Stats summarizes the telemetry store for the status endpoint
func (c *TelemetryController) Stats() (totalTerms int, totalSearches int, err error) {
	records, err := c.db.GetAllSearchRecords()
	if err != nil {
		return 0, 0, err
	}
	for _, record := range records {
		totalSearches += record.Count
	}
	return len(records), totalSearches, nil
}

func (c *TelemetryController) softFail(msg, term string, err error) IncrementResult {
	c.logger.WithError(err).WithField("term", term).Error(msg)
	metrics.TelemetryIncrementsTotal.WithLabelValues("error").Inc()
	return IncrementResult{Success: false, Message: msg + ": " + err.Error()}
}
