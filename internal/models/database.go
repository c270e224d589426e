package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// SearchRecord operations

// CreateSearchRecord inserts a new telemetry record
func (db *Database) CreateSearchRecord(record *SearchRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), record)
}

// UpdateSearchRecord updates an existing telemetry record
func (db *Database) UpdateSearchRecord(record *SearchRecord) error {
	record.UpdatedAt = time.Now()
	return db.store.Update(record.ID, record)
}

// GetSearchRecordByTerm retrieves the telemetry record for an exact term.
// Returns bolthold.ErrNotFound when no record exists for the term.
func (db *Database) GetSearchRecordByTerm(term string) (*SearchRecord, error) {
	var records []*SearchRecord
	err := db.store.Find(&records, bolthold.Where("SearchTerm").Eq(term).Index("SearchTerm"))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, bolthold.ErrNotFound
	}
	// The dedup invariant is advisory only; when a race slipped a
	// duplicate in, the first match wins.
	return records[0], nil
}

// TopSearchRecords retrieves the highest-count records, count descending
func (db *Database) TopSearchRecords(limit int) ([]*SearchRecord, error) {
	var records []*SearchRecord
	err := db.store.Find(&records,
		bolthold.Where("Count").Ge(1).SortBy("Count").Reverse().Limit(limit))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetAllSearchRecords retrieves every telemetry record
func (db *Database) GetAllSearchRecords() ([]*SearchRecord, error) {
	var records []*SearchRecord
	err := db.store.Find(&records, nil)
	return records, err
}

// Preference operations

// GetPreference retrieves a preference value, falling back to def when unset
func (db *Database) GetPreference(key, def string) (string, error) {
	var pref Preference
	err := db.store.Get(key, &pref)
	if err == bolthold.ErrNotFound {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}

// SavePreference stores a preference value, overwriting any previous one
func (db *Database) SavePreference(key, value string) error {
	pref := &Preference{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return db.store.Upsert(key, pref)
}
