package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// PreferencesHandler loads and saves UI preferences (theme)
type PreferencesHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(db *models.Database, logger *logrus.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		db:     db,
		logger: logger,
	}
}

// PreferencesPayload represents the preferences document
type PreferencesPayload struct {
	Theme string `json:"theme"`
}

// ServeHTTP handles the preferences endpoint
func (h *PreferencesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.load(w)
	case http.MethodPut:
		h.save(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PreferencesHandler) load(w http.ResponseWriter) {
	theme, err := h.db.GetPreference(models.PreferenceTheme, models.DefaultTheme)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PreferencesPayload{Theme: theme})
}

func (h *PreferencesHandler) save(w http.ResponseWriter, r *http.Request) {
	var payload PreferencesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Theme != "dark" && payload.Theme != "light" {
		http.Error(w, "Unknown theme", http.StatusBadRequest)
		return
	}

	if err := h.db.SavePreference(models.PreferenceTheme, payload.Theme); err != nil {
		h.logger.WithError(err).Error("Failed to save preferences")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
