package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports telemetry store statistics
type StatusHandler struct {
	telemetryCtrl *controllers.TelemetryController
	logger        *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(telemetryCtrl *controllers.TelemetryController, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		telemetryCtrl: telemetryCtrl,
		logger:        logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	DistinctTerms int            `json:"distinct_terms"`
	TotalSearches int            `json:"total_searches"`
	TopTerms      map[string]int `json:"top_terms"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	terms, searches, err := h.telemetryCtrl.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get telemetry stats")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		DistinctTerms: terms,
		TotalSearches: searches,
		TopTerms:      make(map[string]int),
	}
	for _, record := range h.telemetryCtrl.Trending() {
		response.TopTerms[record.SearchTerm] = record.Count
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
