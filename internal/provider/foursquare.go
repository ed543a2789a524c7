package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

const (
	foursquareBaseURL    = "https://places-api.foursquare.com"
	foursquareAPIVersion = "2025-06-17"
	foursquareMaxRadiusM = 100000
)

// foursquareCategories is a curated list of specific food and drink
// category IDs. Broad categories like food courts and transport hubs are
// deliberately absent; they pull in too many non-dining venues.
const foursquareCategories = "13065,13145,13314,13236,13066,13068,13070,13071,13072,13073,13076,13077,13079,13080," +
	"13081,13082,13083,13084,13085,13086,13087,13088,13089,13090,13091,13092,13093,13094," +
	"13095,13096,13097,13144,13146,13147,13148,13149,13150,13151,13152,13153,13154,13155"

// Foursquare adapts the Foursquare Places search API.
type Foursquare struct {
	baseURL    string
	httpClient *http.Client
}

// FoursquareOption configures a Foursquare adapter.
type FoursquareOption func(*Foursquare)

// WithFoursquareBaseURL overrides the endpoint, used by tests.
func WithFoursquareBaseURL(u string) FoursquareOption {
	return func(f *Foursquare) { f.baseURL = u }
}

// NewFoursquare returns a Foursquare adapter with the given per-request
// timeout.
func NewFoursquare(timeout time.Duration, opts ...FoursquareOption) *Foursquare {
	f := &Foursquare{
		baseURL:    foursquareBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Foursquare) Name() listing.Source { return listing.SourceFoursquare }

func (f *Foursquare) Enabled(creds listing.Credentials) bool {
	return strings.TrimSpace(creds.Foursquare) != ""
}

type fsqPlace struct {
	FsqPlaceID string  `json:"fsq_place_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Rating float64 `json:"rating"`
	Price  int     `json:"price"`
}

type fsqResponse struct {
	Results []fsqPlace `json:"results"`
}

func (f *Foursquare) Search(ctx context.Context, req listing.SearchRequest) ([]listing.Listing, error) {
	radius := req.RadiusMeters
	if radius > foursquareMaxRadiusM {
		radius = foursquareMaxRadiusM
	}

	q := url.Values{}
	q.Set("ll", fmt.Sprintf("%f,%f", req.Origin.Lat, req.Origin.Lon))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("categories", foursquareCategories)
	q.Set("limit", "50")
	q.Set("sort", "POPULARITY")
	if term := strings.TrimSpace(req.Term); term != "" {
		q.Set("query", term)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/places/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building foursquare request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(req.Credentials.Foursquare))
	httpReq.Header.Set("X-Places-Api-Version", foursquareAPIVersion)

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("foursquare request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("foursquare status %d", resp.StatusCode)
	}

	var body fsqResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding foursquare response: %w", err)
	}

	results := make([]listing.Listing, 0, len(body.Results))
	for _, place := range body.Results {
		names := make([]string, 0, len(place.Categories))
		for _, cat := range place.Categories {
			if cat.Name != "" {
				names = append(names, cat.Name)
			}
		}
		cuisine := strings.Join(names, ", ")
		if cuisine == "" {
			cuisine = listing.CuisineUnspecified
		}

		address := place.Location.FormattedAddress
		if address == "" {
			address = listing.AddressUnavailable
		}

		l := listing.Listing{
			Name:     place.Name,
			Coords:   geo.Coordinates{Lat: place.Latitude, Lon: place.Longitude},
			Cuisine:  cuisine,
			Address:  address,
			Rating:   fsqRating(place.Rating),
			Price:    fsqPrice(place.Price),
			Source:   listing.SourceFoursquare,
			NativeID: place.FsqPlaceID,
		}
		if l.Name == "" {
			l.Name = "Unnamed"
		}

		if accept(req, &l, cuisine) {
			results = append(results, l)
		}
	}
	return results, nil
}

// fsqRating maps Foursquare's 0-10 scale onto the common 0-5 scale. Halving
// unconditionally keeps the mapping monotonic: a 6.0 venue must not display
// below a 4.0 one.
func fsqRating(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return r / 2
}

func fsqPrice(p int) listing.PriceTier {
	switch p {
	case 1:
		return listing.PriceCheap
	case 2:
		return listing.PriceModerate
	case 3:
		return listing.PriceExpensive
	case 4:
		return listing.PricePremium
	default:
		return listing.PriceUnknown
	}
}
