package models

import "time"

// SearchRecord is the persisted per-term telemetry counter.
//
// At most one record should exist per distinct SearchTerm (case and
// whitespace sensitive). The store does not enforce this atomically:
// the increment is a read-then-write, so two concurrent increments for
// the same term can lose one count. Telemetry is approximate here.
type SearchRecord struct {
	ID         uint64 `boltholdKey:"ID" json:"id"`
	SearchTerm string `boltholdIndex:"SearchTerm" json:"search_term"`

	Count int `boltholdIndex:"Count" json:"count"`

	// Reference media of the first-ranked result at the time of the
	// last update. Overwritten on every increment, not accumulated.
	MediaID   int    `json:"media_id"`
	PosterURL string `json:"poster_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preference is a persisted UI preference (theme, menu state)
type Preference struct {
	Key   string `boltholdKey:"Key" json:"key"`
	Value string `json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Known preference keys
const (
	PreferenceTheme = "theme"
	DefaultTheme    = "dark"
)
