package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

var testOrigin = geo.Coordinates{Lat: 1.3521, Lon: 103.8198}

func testRequest(term string) listing.SearchRequest {
	return listing.SearchRequest{
		Origin:       testOrigin,
		RadiusMeters: 3000,
		Term:         term,
		Credentials:  listing.Credentials{Foursquare: "fsq-key", Google: "g-key"},
	}
}

func TestFoursquareSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer fsq-key" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Places-Api-Version") == "" {
			t.Error("missing X-Places-Api-Version header")
		}
		if got := r.URL.Query().Get("sort"); got != "POPULARITY" {
			t.Errorf("sort = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"fsq_place_id":"abc123","name":"Sin Kee Chicken Rice",
			 "latitude":1.3530,"longitude":103.8190,
			 "categories":[{"name":"Hainanese Restaurant"}],
			 "location":{"formatted_address":"1 Margaret Drive"},
			 "rating":8.6,"price":1},
			{"fsq_place_id":"far999","name":"Far Away Diner",
			 "latitude":1.45,"longitude":103.95,
			 "categories":[{"name":"Restaurant"}],
			 "location":{"formatted_address":"far"}},
			{"fsq_place_id":"nocoords","name":"Ghost Venue",
			 "categories":[{"name":"Restaurant"}],
			 "location":{}}
		]}`))
	}))
	defer srv.Close()

	fsq := NewFoursquare(5*time.Second, WithFoursquareBaseURL(srv.URL))
	got, err := fsq.Search(context.Background(), testRequest(""))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Far Away Diner is outside the recomputed radius; Ghost Venue has no
	// coordinates. Only Sin Kee survives.
	if len(got) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(got))
	}
	l := got[0]
	if l.Name != "Sin Kee Chicken Rice" {
		t.Errorf("Name = %q", l.Name)
	}
	if l.NativeID != "abc123" || l.Source != listing.SourceFoursquare {
		t.Errorf("identity fields wrong: %q %q", l.NativeID, l.Source)
	}
	if l.Cuisine != "Hainanese Restaurant" {
		t.Errorf("Cuisine = %q", l.Cuisine)
	}
	if l.Rating != 4.3 {
		t.Errorf("expected 0-10 rating rescaled to 4.3, got %v", l.Rating)
	}
	if l.Price != listing.PriceCheap {
		t.Errorf("Price = %q", l.Price)
	}
	if l.DistanceKm <= 0 || l.DistanceKm > 3 {
		t.Errorf("DistanceKm = %v, want within radius", l.DistanceKm)
	}
}

func TestFoursquareTermPreFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "sushi" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"fsq_place_id":"s1","name":"Sushi Kou","latitude":1.3525,"longitude":103.8200,
			 "categories":[{"name":"Japanese Restaurant"}],"location":{"formatted_address":"x"}},
			{"fsq_place_id":"t1","name":"Tandoori Palace","latitude":1.3525,"longitude":103.8200,
			 "categories":[{"name":"Indian Restaurant"}],"location":{"formatted_address":"y"}}
		]}`))
	}))
	defer srv.Close()

	fsq := NewFoursquare(5*time.Second, WithFoursquareBaseURL(srv.URL))
	got, err := fsq.Search(context.Background(), testRequest("sushi"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Sushi Kou" {
		t.Fatalf("term pre-filter should keep only Sushi Kou, got %v", names(got))
	}
}

func TestFoursquareNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	fsq := NewFoursquare(5*time.Second, WithFoursquareBaseURL(srv.URL))
	if _, err := fsq.Search(context.Background(), testRequest("")); err == nil {
		t.Error("expected error on 401")
	}
}

func TestFoursquareEnabled(t *testing.T) {
	fsq := NewFoursquare(time.Second)
	if fsq.Enabled(listing.Credentials{}) {
		t.Error("should be disabled without a key")
	}
	if !fsq.Enabled(listing.Credentials{Foursquare: "k"}) {
		t.Error("should be enabled with a key")
	}
}

func names(ls []listing.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}

func TestFsqRatingMonotonic(t *testing.T) {
	if got := fsqRating(4.0); got != 2.0 {
		t.Errorf("fsqRating(4.0) = %v, want 2.0", got)
	}
	if got := fsqRating(6.0); got != 3.0 {
		t.Errorf("fsqRating(6.0) = %v, want 3.0", got)
	}
	if got := fsqRating(0); got != 0 {
		t.Errorf("fsqRating(0) = %v, want 0", got)
	}
	prev := 0.0
	for r := 0.5; r <= 10; r += 0.5 {
		cur := fsqRating(r)
		if cur < prev {
			t.Fatalf("fsqRating not monotonic: f(%v)=%v < f(%v)=%v", r, cur, r-0.5, prev)
		}
		prev = cur
	}
}
