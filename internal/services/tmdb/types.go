package tmdb

import "github.com/flickpulse/flickpulse/internal/models"

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// catalogResponse represents the JSON envelope returned by TMDB search
// and discover endpoints
type catalogResponse struct {
	Page    int      `json:"page"`
	Results []entry `json:"results"`
}

// entry represents one raw catalog entry. Movies and tv shows expose
// different field names for title and date; both sets are captured here
// and unified by normalize.
type entry struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
}

// normalize maps a raw entry to the uniform display shape, tagged with
// the media kind of the filter that produced it
func normalize(raw entry, kind models.MediaKind) models.MediaItem {
	title := raw.Title
	if title == "" {
		title = raw.Name
	}

	date := raw.ReleaseDate
	if date == "" {
		date = raw.FirstAirDate
	}

	return models.MediaItem{
		ID:               raw.ID,
		Title:            title,
		ReleaseDate:      date,
		PosterPath:       raw.PosterPath,
		PosterURL:        PosterURL(raw.PosterPath),
		VoteAverage:      raw.VoteAverage,
		OriginalLanguage: raw.OriginalLanguage,
		MediaKind:        kind,
	}
}

// PosterURL derives the display image URL for a poster path.
// An empty path yields an empty URL.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return posterBaseURL + posterPath
}
