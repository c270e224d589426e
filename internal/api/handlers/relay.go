package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/flickpulse/flickpulse/internal/config"
	"github.com/flickpulse/flickpulse/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RelayHandler forwards catalog requests to the TMDB API with the
// server-held credential and mirrors back status and body verbatim.
// It holds no state and does not validate the requested path.
type RelayHandler struct {
	upstreamBase string
	bearer       string
	httpClient   *http.Client
	logger       *logrus.Logger
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(cfg *config.Config, logger *logrus.Logger) *RelayHandler {
	return &RelayHandler{
		upstreamBase: cfg.TMDBBaseURL,
		bearer:       cfg.TMDBBearer,
		httpClient:   &http.Client{},
		logger:       logger,
	}
}

// ServeHTTP handles the relay endpoint
func (h *RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	path := params.Get("path")
	if path == "" {
		path = "/discover/movie"
	}
	search := params.Get("search")

	target := h.upstreamBase + path
	if search != "" {
		target += "?" + search
	}

	h.logger.WithField("target", target).Debug("Forwarding relay request")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		h.fail(w, err)
		return
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.bearer)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.fail(w, err)
		return
	}

	// Mirror only well-formed JSON; a garbled upstream body is an
	// internal error, not a passthrough.
	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		h.fail(w, err)
		return
	}

	metrics.RelayForwardsTotal.WithLabelValues(fmt.Sprintf("%dxx", resp.StatusCode/100)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}

// fail answers with the fixed-shape error envelope. The relay must
// never leave a caller hanging.
func (h *RelayHandler) fail(w http.ResponseWriter, err error) {
	h.logger.WithError(err).Error("Relay request failed")
	metrics.RelayForwardsTotal.WithLabelValues("error").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "TMDB proxy error",
		"error":   err.Error(),
	})
}
