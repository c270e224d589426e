package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// TrendingHandler serves the search-count leaderboard
type TrendingHandler struct {
	telemetryCtrl *controllers.TelemetryController
	logger        *logrus.Logger
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(telemetryCtrl *controllers.TelemetryController, logger *logrus.Logger) *TrendingHandler {
	return &TrendingHandler{
		telemetryCtrl: telemetryCtrl,
		logger:        logger,
	}
}

// TrendingResponse represents the leaderboard response
type TrendingResponse struct {
	Records []*models.SearchRecord `json:"records"`
}

// ServeHTTP handles the trending endpoint. A store failure yields an
// empty leaderboard, never an error response.
func (h *TrendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records := h.telemetryCtrl.Trending()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TrendingResponse{Records: records})
}
