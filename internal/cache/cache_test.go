package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lethimcook.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestGeocodeRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	e := GeocodeEntry{
		Query:       "tiong bahru",
		Coords:      geo.Coordinates{Lat: 1.2847, Lon: 103.8278},
		DisplayName: "Tiong Bahru, Singapore",
		FetchedAt:   time.Now(),
	}
	if err := s.PutGeocode(e); err != nil {
		t.Fatalf("PutGeocode: %v", err)
	}

	got, ok, err := s.GetGeocode("tiong bahru")
	if err != nil {
		t.Fatalf("GetGeocode: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Coords != e.Coords || got.DisplayName != e.DisplayName {
		t.Errorf("got %+v, want %+v", got, e)
	}
}

func TestGeocodeMiss(t *testing.T) {
	s, _ := openTestStore(t)
	_, ok, err := s.GetGeocode("never stored")
	if err != nil {
		t.Fatalf("GetGeocode: %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestGeocodeUpsert(t *testing.T) {
	s, _ := openTestStore(t)

	first := GeocodeEntry{Query: "q", Coords: geo.Coordinates{Lat: 1, Lon: 2}, DisplayName: "old", FetchedAt: time.Now()}
	second := GeocodeEntry{Query: "q", Coords: geo.Coordinates{Lat: 3, Lon: 4}, DisplayName: "new", FetchedAt: time.Now()}
	if err := s.PutGeocode(first); err != nil {
		t.Fatalf("PutGeocode: %v", err)
	}
	if err := s.PutGeocode(second); err != nil {
		t.Fatalf("PutGeocode upsert: %v", err)
	}

	got, ok, _ := s.GetGeocode("q")
	if !ok || got.DisplayName != "new" {
		t.Errorf("last writer should win, got %+v", got)
	}
}

func TestSearchHistory(t *testing.T) {
	s, _ := openTestStore(t)

	for i := 0; i < 3; i++ {
		rec := SearchRecord{
			Address:    "Orchard Road",
			Term:       "sushi",
			RadiusKm:   3,
			Foursquare: 5, Google: 4, OSM: 6,
			Duplicates: 2, Final: 10,
			SearchedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := s.LogSearch(rec); err != nil {
			t.Fatalf("LogSearch: %v", err)
		}
	}

	got, err := s.RecentSearches(2)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !got[0].SearchedAt.After(got[1].SearchedAt) {
		t.Error("history should be newest first")
	}
	if got[0].Final != 10 || got[0].Duplicates != 2 {
		t.Errorf("counts not preserved: %+v", got[0])
	}
}

func TestPrune(t *testing.T) {
	s, _ := openTestStore(t)

	old := SearchRecord{Address: "a", RadiusKm: 1, SearchedAt: time.Now().Add(-48 * time.Hour)}
	fresh := SearchRecord{Address: "b", RadiusKm: 1, SearchedAt: time.Now()}
	s.LogSearch(old)
	s.LogSearch(fresh)

	deleted, err := s.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted row, got %d", deleted)
	}

	rest, _ := s.RecentSearches(10)
	if len(rest) != 1 || rest[0].Address != "b" {
		t.Errorf("wrong survivor: %+v", rest)
	}
}

func TestStats(t *testing.T) {
	s, dbPath := openTestStore(t)
	s.LogSearch(SearchRecord{Address: "x", RadiusKm: 2, SearchedAt: time.Now()})

	count, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
