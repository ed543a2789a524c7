package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

const overpassBaseURL = "https://overpass-api.de"

// overpassTermSanitizer keeps only characters safe to embed in an Overpass
// regex filter.
var overpassTermSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)

// Overpass adapts the community-maintained OpenStreetMap database through
// the Overpass API. Needs no credentials, so it always contributes.
type Overpass struct {
	baseURL    string
	httpClient *http.Client
}

// OverpassOption configures an Overpass adapter.
type OverpassOption func(*Overpass)

// WithOverpassBaseURL overrides the endpoint, used by tests.
func WithOverpassBaseURL(u string) OverpassOption {
	return func(o *Overpass) { o.baseURL = u }
}

// NewOverpass returns an Overpass adapter. The timeout should be generous;
// Overpass is the slowest of the three upstreams.
func NewOverpass(timeout time.Duration, opts ...OverpassOption) *Overpass {
	o := &Overpass{
		baseURL:    overpassBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Overpass) Name() listing.Source { return listing.SourceOSM }

// Enabled always returns true: OpenStreetMap needs no API key.
func (o *Overpass) Enabled(listing.Credentials) bool { return true }

type overpassElement struct {
	Type   string  `json:"type"`
	ID     int64   `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Center struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (o *Overpass) Search(ctx context.Context, req listing.SearchRequest) ([]listing.Listing, error) {
	var cuisineFilter string
	if term := overpassTermSanitizer.ReplaceAllString(strings.TrimSpace(req.Term), ""); term != "" {
		cuisineFilter = fmt.Sprintf(`["cuisine"~"%s",i]`, term)
	}

	query := fmt.Sprintf(`
[out:json][timeout:25];
(
  node["amenity"="restaurant"]%s(around:%d,%f,%f);
  way["amenity"="restaurant"]%s(around:%d,%f,%f);
);
out center;`,
		cuisineFilter, req.RadiusMeters, req.Origin.Lat, req.Origin.Lon,
		cuisineFilter, req.RadiusMeters, req.Origin.Lat, req.Origin.Lon)

	form := url.Values{}
	form.Set("data", query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/interpreter",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building overpass request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	results := make([]listing.Listing, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		coords := geo.Coordinates{Lat: el.Lat, Lon: el.Lon}
		if el.Type != "node" {
			coords = geo.Coordinates{Lat: el.Center.Lat, Lon: el.Center.Lon}
		}

		tags := el.Tags
		name := tags["name"]
		if name == "" {
			name = "Unnamed Restaurant"
		}

		cuisine := strings.ReplaceAll(tags["cuisine"], ";", ", ")
		if cuisine == "" {
			cuisine = listing.CuisineUnspecified
		}

		address := strings.TrimSpace(tags["addr:street"] + " " + tags["addr:housenumber"])
		if address == "" {
			address = listing.AddressUnavailable
		}

		phone := tags["phone"]
		if phone == "" {
			phone = tags["contact:phone"]
		}
		website := tags["website"]
		if website == "" {
			website = tags["contact:website"]
		}

		l := listing.Listing{
			Name:     name,
			Coords:   coords,
			Cuisine:  cuisine,
			Address:  address,
			Phone:    phone,
			Website:  website,
			Hours:    tags["opening_hours"],
			Source:   listing.SourceOSM,
			NativeID: fmt.Sprintf("%s/%d", el.Type, el.ID),
		}

		if accept(req, &l, "restaurant") {
			results = append(results, l)
		}
	}
	return results, nil
}
