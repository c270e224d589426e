package models

import (
	"path/filepath"
	"testing"

	"github.com/timshannon/bolthold"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetSearchRecordByTerm(t *testing.T) {
	db := testDB(t)

	if _, err := db.GetSearchRecordByTerm("dune"); err != bolthold.ErrNotFound {
		t.Fatalf("Expected ErrNotFound for missing term, got %v", err)
	}

	record := &SearchRecord{SearchTerm: "dune", Count: 1, MediaID: 438631}
	if err := db.CreateSearchRecord(record); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	found, err := db.GetSearchRecordByTerm("dune")
	if err != nil {
		t.Fatalf("Failed to find record: %v", err)
	}
	if found.SearchTerm != "dune" || found.Count != 1 {
		t.Errorf("Record mismatch: %+v", found)
	}
	if found.CreatedAt.IsZero() || found.UpdatedAt.IsZero() {
		t.Error("Timestamps should be set on create")
	}
}

func TestTopSearchRecordsLimit(t *testing.T) {
	db := testDB(t)

	terms := map[string]int{"a": 4, "b": 9, "c": 1}
	for term, count := range terms {
		if err := db.CreateSearchRecord(&SearchRecord{SearchTerm: term, Count: count}); err != nil {
			t.Fatalf("Failed to create record: %v", err)
		}
	}

	top, err := db.TopSearchRecords(2)
	if err != nil {
		t.Fatalf("Failed to get top records: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(top))
	}
	if top[0].Count != 9 || top[1].Count != 4 {
		t.Errorf("Bad ordering: counts %d, %d", top[0].Count, top[1].Count)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	db := testDB(t)

	theme, err := db.GetPreference(PreferenceTheme, DefaultTheme)
	if err != nil {
		t.Fatalf("Failed to get preference: %v", err)
	}
	if theme != DefaultTheme {
		t.Errorf("Expected default %q, got %q", DefaultTheme, theme)
	}

	if err := db.SavePreference(PreferenceTheme, "light"); err != nil {
		t.Fatalf("Failed to save preference: %v", err)
	}
	// Saving again must overwrite, not duplicate
	if err := db.SavePreference(PreferenceTheme, "dark"); err != nil {
		t.Fatalf("Failed to overwrite preference: %v", err)
	}

	theme, err = db.GetPreference(PreferenceTheme, DefaultTheme)
	if err != nil {
		t.Fatalf("Failed to get preference: %v", err)
	}
	if theme != "dark" {
		t.Errorf("Expected overwritten value, got %q", theme)
	}
}

func TestFilterMapping(t *testing.T) {
	if FilterMovies.Kind() != MediaKindMovie {
		t.Error("movies should map to movie")
	}
	if FilterSeries.Kind() != MediaKindTV {
		t.Error("series should map to tv")
	}
	if FilterAnime.Kind() != MediaKindTV {
		t.Error("anime should map to tv")
	}
	if FilterAnime.GenreID() != AnimationGenreID {
		t.Error("anime should carry the animation genre constraint")
	}
	if FilterMovies.GenreID() != 0 || FilterSeries.GenreID() != 0 {
		t.Error("only anime carries a genre constraint")
	}
	if MediaFilter("documentaries").Valid() {
		t.Error("unknown filter should not validate")
	}
}
