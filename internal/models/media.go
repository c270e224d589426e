package models

// MediaItem is the normalized view of one upstream catalog entry.
// It lives for a single request/render cycle and is never persisted.
type MediaItem struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	ReleaseDate      string    `json:"release_date"`
	PosterPath       string    `json:"poster_path"`
	PosterURL        string    `json:"poster_url"`
	VoteAverage      float64   `json:"vote_average"`
	OriginalLanguage string    `json:"original_language"`
	MediaKind        MediaKind `json:"media_kind"`
}
