package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flickpulse/flickpulse/internal/models"
)

type fetchCall struct {
	query  string
	filter models.MediaFilter
}

// fakeFetcher records catalog calls and answers them via a pluggable
// respond function
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(query string, filter models.MediaFilter) ([]models.MediaItem, error)
}

func (f *fakeFetcher) FetchCatalog(ctx context.Context, query string, filter models.MediaFilter) ([]models.MediaItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{query: query, filter: filter})
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return []models.MediaItem{{ID: 1, Title: "Stub"}}, nil
	}
	return respond(query, filter)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fetchCall{}
	}
	return f.calls[len(f.calls)-1]
}

// fakeRecorder records telemetry increments
type fakeRecorder struct {
	mu          sync.Mutex
	increments  []fetchCall // query stored in query field, filter unused
	refs        []models.MediaItem
	trending    []*models.SearchRecord
	trendingErr error
}

func (r *fakeRecorder) IncrementSearch(term string, reference models.MediaItem) IncrementResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.increments = append(r.increments, fetchCall{query: term})
	r.refs = append(r.refs, reference)
	return IncrementResult{Success: true, Outcome: models.OutcomeCreated}
}

func (r *fakeRecorder) TrendingRecords() ([]*models.SearchRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trending, r.trendingErr
}

func (r *fakeRecorder) incrementCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.increments)
}

func newTestController(fetcher *fakeFetcher, recorder *fakeRecorder) (*SearchController, chan SearchState) {
	ctrl := NewSearchController(fetcher, recorder, 50*time.Millisecond, testLogger())
	states := make(chan SearchState, 256)
	ctrl.OnChange(func(s SearchState) {
		select {
		case states <- s:
		default:
		}
	})
	return ctrl, states
}

// waitFor receives state snapshots until one satisfies the predicate
func waitFor(t *testing.T, states chan SearchState, what string, pred func(SearchState) bool) SearchState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for %s", what)
		}
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	fetcher := &fakeFetcher{}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})
	ctx := context.Background()

	ctrl.SetInput(ctx, "b")
	ctrl.SetInput(ctx, "ba")
	ctrl.SetInput(ctx, "bat")

	waitFor(t, states, "debounced search to finish", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess && s.DebouncedInput == "bat"
	})

	if count := fetcher.callCount(); count != 1 {
		t.Errorf("Expected exactly 1 fetch for the burst, got %d", count)
	}
	if call := fetcher.lastCall(); call.query != "bat" {
		t.Errorf("Expected fetch for last value \"bat\", got %q", call.query)
	}
}

func TestSameValueRecommitDoesNotRefetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})
	ctx := context.Background()

	ctrl.SetInput(ctx, "dune")
	waitFor(t, states, "first search", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess
	})

	// Typing the committed value again settles on the same debounced
	// input and must not trigger another fetch
	ctrl.SetInput(ctx, "dune")
	time.Sleep(150 * time.Millisecond)

	if count := fetcher.callCount(); count != 1 {
		t.Errorf("Expected 1 fetch, got %d", count)
	}
}

func TestFilterChangeResetsInputAndDiscovers(t *testing.T) {
	fetcher := &fakeFetcher{}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})
	ctx := context.Background()

	ctrl.SetInput(ctx, "dune")
	waitFor(t, states, "search for dune", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess && s.DebouncedInput == "dune"
	})

	ctrl.SetFilter(ctx, models.FilterSeries)
	state := waitFor(t, states, "series discovery", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess && s.ActiveFilter == models.FilterSeries
	})

	if state.RawInput != "" || state.DebouncedInput != "" {
		t.Errorf("Filter change should clear input, got raw=%q debounced=%q", state.RawInput, state.DebouncedInput)
	}

	call := fetcher.lastCall()
	if call.query != "" {
		t.Errorf("Filter change should issue a discovery request, got query %q", call.query)
	}
	if call.filter != models.FilterSeries {
		t.Errorf("Expected series filter, got %q", call.filter)
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	fetcher := &fakeFetcher{
		respond: func(query string, filter models.MediaFilter) ([]models.MediaItem, error) {
			return nil, nil
		},
	}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})

	ctrl.SetInput(context.Background(), "zzzzz")
	state := waitFor(t, states, "empty state", func(s SearchState) bool {
		return s.Phase == models.PhaseEmpty
	})

	if state.ErrorMessage != "Nenhum filme encontrado" {
		t.Errorf("Expected movies empty-state message, got %q", state.ErrorMessage)
	}
	if len(state.Results) != 0 {
		t.Errorf("Empty state should clear results")
	}
}

func TestTransportErrorIsNotEmptyState(t *testing.T) {
	fetcher := &fakeFetcher{
		respond: func(query string, filter models.MediaFilter) ([]models.MediaItem, error) {
			return nil, errors.New("connection refused")
		},
	}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})

	ctrl.SetInput(context.Background(), "dune")
	state := waitFor(t, states, "failed state", func(s SearchState) bool {
		return s.Phase == models.PhaseFailed
	})

	if state.ErrorMessage == "Nenhum filme encontrado" {
		t.Error("Transport error must not produce the empty-state message")
	}
	if state.ErrorMessage != "Error fetching movies: connection refused" {
		t.Errorf("Unexpected error message %q", state.ErrorMessage)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	seriesItem := models.MediaItem{ID: 10, Title: "Slow Series", MediaKind: models.MediaKindTV}
	animeItem := models.MediaItem{ID: 20, Title: "Fast Anime", MediaKind: models.MediaKindTV}

	fetcher := &fakeFetcher{
		respond: func(query string, filter models.MediaFilter) ([]models.MediaItem, error) {
			if filter == models.FilterSeries {
				<-release
				return []models.MediaItem{seriesItem}, nil
			}
			return []models.MediaItem{animeItem}, nil
		},
	}
	ctrl, states := newTestController(fetcher, &fakeRecorder{})
	ctx := context.Background()

	// First fetch hangs on the network, second one overtakes it
	ctrl.SetFilter(ctx, models.FilterSeries)
	ctrl.SetFilter(ctx, models.FilterAnime)

	waitFor(t, states, "anime results", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess && len(s.Results) == 1 && s.Results[0].ID == 20
	})

	// Now the stale series response arrives; it must not win
	close(release)
	time.Sleep(100 * time.Millisecond)

	state := ctrl.Snapshot()
	if state.Phase != models.PhaseSuccess || len(state.Results) != 1 || state.Results[0].ID != 20 {
		t.Errorf("Stale response overwrote fresher results: %+v", state.Results)
	}
}

func TestTelemetryFiredForSearchesOnly(t *testing.T) {
	items := []models.MediaItem{
		{ID: 438631, Title: "Dune", PosterURL: "https://image.tmdb.org/t/p/w500/dune.jpg"},
		{ID: 693134, Title: "Dune: Part Two"},
	}
	fetcher := &fakeFetcher{
		respond: func(query string, filter models.MediaFilter) ([]models.MediaItem, error) {
			return items, nil
		},
	}
	recorder := &fakeRecorder{}
	ctrl, states := newTestController(fetcher, recorder)
	ctx := context.Background()

	// Discovery (empty query) must not be counted
	ctrl.SetFilter(ctx, models.FilterMovies)
	waitFor(t, states, "discovery", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess
	})
	time.Sleep(50 * time.Millisecond)
	if recorder.incrementCount() != 0 {
		t.Fatalf("Discovery should not increment telemetry, got %d", recorder.incrementCount())
	}

	// A real search is counted once, keyed by the first result
	ctrl.SetInput(ctx, "dune")
	waitFor(t, states, "search", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess && s.DebouncedInput == "dune"
	})

	deadline := time.Now().Add(2 * time.Second)
	for recorder.incrementCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.increments) != 1 {
		t.Fatalf("Expected 1 increment, got %d", len(recorder.increments))
	}
	if recorder.increments[0].query != "dune" {
		t.Errorf("Expected increment for \"dune\", got %q", recorder.increments[0].query)
	}
	if recorder.refs[0].ID != 438631 {
		t.Errorf("Expected first result as reference, got %d", recorder.refs[0].ID)
	}
}

func TestTrendingFailureIsIsolated(t *testing.T) {
	fetcher := &fakeFetcher{}
	recorder := &fakeRecorder{trendingErr: errors.New("store unreachable")}
	ctrl, states := newTestController(fetcher, recorder)

	ctrl.Start(context.Background())

	state := waitFor(t, states, "initial discovery", func(s SearchState) bool {
		return s.Phase == models.PhaseSuccess
	})

	if state.TrendingError != "Não foi possível carregar filmes em destaque" {
		t.Errorf("Expected trending error message, got %q", state.TrendingError)
	}
	if len(state.Trending) != 0 {
		t.Errorf("Expected empty leaderboard on failure")
	}
	if state.ErrorMessage != "" {
		t.Errorf("Trending failure must not touch search error, got %q", state.ErrorMessage)
	}

	// The store comes back; a refresh clears the message
	recorder.mu.Lock()
	recorder.trendingErr = nil
	recorder.trending = []*models.SearchRecord{{SearchTerm: "dune", Count: 3}}
	recorder.mu.Unlock()

	ctrl.RefreshTrending()
	state = ctrl.Snapshot()
	if state.TrendingError != "" {
		t.Errorf("Expected trending error cleared, got %q", state.TrendingError)
	}
	if len(state.Trending) != 1 {
		t.Errorf("Expected refreshed leaderboard, got %d records", len(state.Trending))
	}
}
