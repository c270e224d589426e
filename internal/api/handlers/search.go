package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flickpulse/flickpulse/internal/controllers"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchHandler answers catalog search and discovery requests
type SearchHandler struct {
	searchCtrl *controllers.SearchController
	logger     *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchCtrl *controllers.SearchController, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchCtrl: searchCtrl,
		logger:     logger,
	}
}

// ServeHTTP handles the search endpoint. An empty query means
// discovery for the requested category.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("query")

	filter := models.MediaFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = models.FilterMovies
	}
	if !filter.Valid() {
		http.Error(w, "Unknown filter", http.StatusBadRequest)
		return
	}

	outcome := h.searchCtrl.Search(r.Context(), query, filter)

	// An upstream failure is the only non-2xx case; an empty result
	// set is a valid state, not an error.
	status := http.StatusOK
	if outcome.Phase == models.PhaseFailed {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(outcome)
}
