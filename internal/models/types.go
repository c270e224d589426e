package models

// MediaKind represents the upstream kind of a catalog entry (movie or tv show)
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// MediaFilter represents the category filter selected in the UI
type MediaFilter string

const (
	FilterMovies MediaFilter = "movies"
	FilterSeries MediaFilter = "series"
	FilterAnime  MediaFilter = "anime"
)

// AnimationGenreID is the TMDB genre id used to constrain the anime filter
const AnimationGenreID = 16

// Kind maps a filter to the upstream media kind it queries
func (f MediaFilter) Kind() MediaKind {
	if f == FilterSeries || f == FilterAnime {
		return MediaKindTV
	}
	return MediaKindMovie
}

// GenreID returns the genre constraint for the filter, or 0 when there is none
func (f MediaFilter) GenreID() int {
	if f == FilterAnime {
		return AnimationGenreID
	}
	return 0
}

// Valid reports whether f is one of the known filters
func (f MediaFilter) Valid() bool {
	switch f {
	case FilterMovies, FilterSeries, FilterAnime:
		return true
	}
	return false
}

// SearchPhase represents the current phase of a search cycle
type SearchPhase string

const (
	PhaseIdle    SearchPhase = "idle"
	PhaseLoading SearchPhase = "loading"
	PhaseSuccess SearchPhase = "success"
	PhaseEmpty   SearchPhase = "empty"
	PhaseFailed  SearchPhase = "failed"
)

// IncrementOutcome reports what a telemetry increment did to the store
type IncrementOutcome string

const (
	OutcomeCreated IncrementOutcome = "created"
	OutcomeUpdated IncrementOutcome = "updated"
	OutcomeSkipped IncrementOutcome = "skipped"
)
