package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/flickpulse/flickpulse/internal/metrics"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// User-facing messages. The empty-state strings are per category and
// distinct from the generic fetch error.
const (
	emptyMoviesMessage = "Nenhum filme encontrado"
	emptySeriesMessage = "Nenhuma série encontrada"
	emptyAnimeMessage  = "Nenhuma animação encontrada"
	fetchErrorPrefix   = "Error fetching movies: "
	trendingErrMessage = "Não foi possível carregar filmes em destaque"
)

// CatalogFetcher is the slice of the metadata client the controller needs
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, query string, filter models.MediaFilter) ([]models.MediaItem, error)
}

// SearchRecorder is the slice of the telemetry controller the
// controller needs: fire-and-forget increments and the leaderboard read
type SearchRecorder interface {
	IncrementSearch(term string, reference models.MediaItem) IncrementResult
	TrendingRecords() ([]*models.SearchRecord, error)
}

// SearchState is a snapshot of everything a front end renders.
// Owned exclusively by the controller; consumers read copies.
type SearchState struct {
	RawInput       string
	DebouncedInput string
	ActiveFilter   models.MediaFilter

	Phase        models.SearchPhase
	Results      []models.MediaItem
	ErrorMessage string

	Trending      []*models.SearchRecord
	TrendingError string
}

// SearchController drives the search cycle: debounced input, category
// filter, upstream fetches, result normalization hand-off and the
// trending leaderboard. All state transitions happen under one mutex;
// suspension points are exactly the fetch calls.
type SearchController struct {
	fetcher   CatalogFetcher
	telemetry SearchRecorder
	debounce  time.Duration
	logger    *logrus.Logger

	mu       sync.Mutex
	state    SearchState
	timer    *time.Timer
	seq      uint64 // sequence number of the latest issued fetch
	onChange func(SearchState)
}

// NewSearchController creates a new search controller
func NewSearchController(fetcher CatalogFetcher, telemetry SearchRecorder, debounce time.Duration, logger *logrus.Logger) *SearchController {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &SearchController{
		fetcher:   fetcher,
		telemetry: telemetry,
		debounce:  debounce,
		logger:    logger,
		state: SearchState{
			ActiveFilter: models.FilterMovies,
			Phase:        models.PhaseIdle,
		},
	}
}

// OnChange registers a callback invoked with a state snapshot after
// every transition. Must be set before Start.
func (c *SearchController) OnChange(fn func(SearchState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Start loads the trending leaderboard and issues the initial discovery
// fetch for the default filter
func (c *SearchController) Start(ctx context.Context) {
	c.RefreshTrending()

	c.mu.Lock()
	c.triggerFetchLocked(ctx)
	c.mu.Unlock()
}

// SetInput records a keystroke. The value is committed to the debounced
// input only after the quiet period elapses with no further change, so
// a burst of keystrokes collapses into a single fetch for the last
// value.
func (c *SearchController) SetInput(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.RawInput = text
	c.notifyLocked()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.commitInput(ctx, text)
	})
}

// commitInput moves a settled raw value into the debounced input and
// starts a fetch cycle if it actually changed
func (c *SearchController) commitInput(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A filter switch or a newer keystroke may have superseded this
	// timer while it was firing.
	if c.state.RawInput != text || c.state.DebouncedInput == text {
		return
	}

	c.state.DebouncedInput = text
	c.triggerFetchLocked(ctx)
}

// SetFilter switches the active category. Switching abandons any
// in-progress search: the input is cleared and a discovery fetch for
// the new category is issued immediately.
func (c *SearchController) SetFilter(ctx context.Context, filter models.MediaFilter) {
	if !filter.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.state.ActiveFilter = filter
	c.state.RawInput = ""
	c.state.DebouncedInput = ""
	c.triggerFetchLocked(ctx)
}

// triggerFetchLocked enters the loading phase and launches a fetch for
// the current debounced input and filter. Each fetch carries a
// monotonic sequence number; a response is applied only if it is still
// the latest issued request, so a slow stale fetch can never overwrite
// a fresher result.
func (c *SearchController) triggerFetchLocked(ctx context.Context) {
	c.seq++
	token := c.seq

	query := c.state.DebouncedInput
	filter := c.state.ActiveFilter

	c.state.Phase = models.PhaseLoading
	c.state.ErrorMessage = ""
	c.notifyLocked()

	go func() {
		items, err := c.fetcher.FetchCatalog(ctx, query, filter)
		c.applyResult(token, query, filter, items, err)
	}()
}

// applyResult applies a fetch outcome, unless a newer fetch has been
// issued since
func (c *SearchController) applyResult(token uint64, query string, filter models.MediaFilter, items []models.MediaItem, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		c.logger.WithFields(logrus.Fields{
			"token":  token,
			"latest": c.seq,
		}).Debug("Discarding stale fetch response")
		return
	}

	switch {
	case err != nil:
		c.logger.WithError(err).Error("Catalog fetch failed")
		c.state.Phase = models.PhaseFailed
		c.state.ErrorMessage = fetchErrorPrefix + err.Error()
		c.state.Results = nil
		metrics.SearchesTotal.WithLabelValues(string(filter), "failed").Inc()

	case len(items) == 0:
		c.state.Phase = models.PhaseEmpty
		c.state.ErrorMessage = emptyMessage(filter)
		c.state.Results = nil
		metrics.SearchesTotal.WithLabelValues(string(filter), "empty").Inc()

	default:
		c.state.Phase = models.PhaseSuccess
		c.state.Results = items
		metrics.SearchesTotal.WithLabelValues(string(filter), "success").Inc()

		// Telemetry rides on real searches only, keyed by the first
		// result. Detached: its failure never touches the result
		// display.
		if query != "" {
			first := items[0]
			go c.telemetry.IncrementSearch(query, first)
		}
	}

	c.notifyLocked()
}

// SearchOutcome is the result of one search cycle performed outside
// the interactive state machine
type SearchOutcome struct {
	Phase   models.SearchPhase `json:"phase"`
	Results []models.MediaItem `json:"results"`
	Message string             `json:"message,omitempty"`
}

// Search performs a single fetch-normalize-count cycle for the HTTP
// API, with the same classification and telemetry rules as the
// interactive cycle but no debounce and no shared state.
func (c *SearchController) Search(ctx context.Context, query string, filter models.MediaFilter) SearchOutcome {
	items, err := c.fetcher.FetchCatalog(ctx, query, filter)

	switch {
	case err != nil:
		c.logger.WithError(err).Error("Catalog fetch failed")
		metrics.SearchesTotal.WithLabelValues(string(filter), "failed").Inc()
		return SearchOutcome{
			Phase:   models.PhaseFailed,
			Results: []models.MediaItem{},
			Message: fetchErrorPrefix + err.Error(),
		}

	case len(items) == 0:
		metrics.SearchesTotal.WithLabelValues(string(filter), "empty").Inc()
		return SearchOutcome{
			Phase:   models.PhaseEmpty,
			Results: []models.MediaItem{},
			Message: emptyMessage(filter),
		}

	default:
		metrics.SearchesTotal.WithLabelValues(string(filter), "success").Inc()
		if query != "" {
			first := items[0]
			go c.telemetry.IncrementSearch(query, first)
		}
		return SearchOutcome{
			Phase:   models.PhaseSuccess,
			Results: items,
		}
	}
}

// RefreshTrending reloads the leaderboard. A failure yields an empty
// leaderboard with its own message and leaves search state alone.
func (c *SearchController) RefreshTrending() {
	records, err := c.telemetry.TrendingRecords()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.WithError(err).Error("Failed to refresh trending leaderboard")
		c.state.Trending = []*models.SearchRecord{}
		c.state.TrendingError = trendingErrMessage
	} else {
		c.state.Trending = records
		c.state.TrendingError = ""
	}
	c.notifyLocked()
}

// Snapshot returns a copy of the current state
func (c *SearchController) Snapshot() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *SearchController) notifyLocked() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}

// emptyMessage picks the per-category empty-state text
func emptyMessage(filter models.MediaFilter) string {
	switch filter {
	case models.FilterSeries:
		return emptySeriesMessage
	case models.FilterAnime:
		return emptyAnimeMessage
	default:
		return emptyMoviesMessage
	}
}
