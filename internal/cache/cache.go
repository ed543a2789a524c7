// Package cache is the on-disk sqlite store: geocoded addresses (so repeat
// searches skip the external lookup) and a log of completed searches.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
)

// Store wraps the sqlite database. Writes go through a single-connection
// handle; reads use a separate read-only handle.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Open creates or opens the store at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS geocodes (
			query        TEXT PRIMARY KEY,
			lat          REAL NOT NULL,
			lon          REAL NOT NULL,
			display_name TEXT NOT NULL,
			fetched_at   DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS searches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			address     TEXT NOT NULL,
			term        TEXT NOT NULL DEFAULT '',
			radius_km   REAL NOT NULL,
			foursquare  INTEGER NOT NULL DEFAULT 0,
			google      INTEGER NOT NULL DEFAULT 0,
			osm         INTEGER NOT NULL DEFAULT 0,
			duplicates  INTEGER NOT NULL DEFAULT 0,
			final       INTEGER NOT NULL DEFAULT 0,
			searched_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(searched_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// GeocodeEntry is a cached geocoding result.
type GeocodeEntry struct {
	Query       string
	Coords      geo.Coordinates
	DisplayName string
	FetchedAt   time.Time
}

// PutGeocode stores a geocoding result. Concurrent writers to the same key
// race benignly; last writer wins and both values are equally valid.
func (s *Store) PutGeocode(e GeocodeEntry) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO geocodes (query, lat, lon, display_name, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			lat = excluded.lat,
			lon = excluded.lon,
			display_name = excluded.display_name,
			fetched_at = excluded.fetched_at
	`, e.Query, e.Coords.Lat, e.Coords.Lon, e.DisplayName, e.FetchedAt)
	return err
}

// GetGeocode looks up a cached geocoding result by query.
func (s *Store) GetGeocode(query string) (GeocodeEntry, bool, error) {
	var e GeocodeEntry
	err := s.readDB.QueryRow(`
		SELECT query, lat, lon, display_name, fetched_at
		FROM geocodes WHERE query = ?
	`, query).Scan(&e.Query, &e.Coords.Lat, &e.Coords.Lon, &e.DisplayName, &e.FetchedAt)
	if err == sql.ErrNoRows {
		return GeocodeEntry{}, false, nil
	}
	if err != nil {
		return GeocodeEntry{}, false, fmt.Errorf("querying geocode: %w", err)
	}
	return e, true, nil
}

// SearchRecord is one completed search as logged to the store.
type SearchRecord struct {
	Address    string
	Term       string
	RadiusKm   float64
	Foursquare int
	Google     int
	OSM        int
	Duplicates int
	Final      int
	SearchedAt time.Time
}

// LogSearch appends a completed search to the history.
func (s *Store) LogSearch(r SearchRecord) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO searches (address, term, radius_km, foursquare, google, osm, duplicates, final, searched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Address, r.Term, r.RadiusKm, r.Foursquare, r.Google, r.OSM, r.Duplicates, r.Final, r.SearchedAt)
	return err
}

// RecentSearches returns up to limit history entries, newest first.
func (s *Store) RecentSearches(limit int) ([]SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.readDB.Query(`
		SELECT address, term, radius_km, foursquare, google, osm, duplicates, final, searched_at
		FROM searches ORDER BY searched_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []SearchRecord
	for rows.Next() {
		var r SearchRecord
		if err := rows.Scan(&r.Address, &r.Term, &r.RadiusKm, &r.Foursquare, &r.Google, &r.OSM,
			&r.Duplicates, &r.Final, &r.SearchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes history entries and geocode cache rows older than the
// retention period. Returns the number of deleted history rows.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	res, err := s.writeDB.Exec(`DELETE FROM searches WHERE searched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if _, err := s.writeDB.Exec(`DELETE FROM geocodes WHERE fetched_at < ?`, cutoff); err != nil {
		return deleted, fmt.Errorf("pruning geocodes: %w", err)
	}
	return deleted, nil
}

// Stats returns the history row count and database file size.
func (s *Store) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := s.readDB.QueryRow(`SELECT COUNT(*) FROM searches`).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting searches: %w", err)
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, nil
	}
	return count, info.Size(), nil
}
