package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

const (
	googleBaseURL    = "https://places.googleapis.com"
	googleMaxRadiusM = 50000

	googleFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
		"places.rating,places.priceLevel,places.photos,places.currentOpeningHours,places.businessStatus"
)

// GooglePlaces adapts the Google Places API (v1). With a search term it uses
// text search biased to the origin circle; without one it uses nearby search
// restricted to restaurants.
type GooglePlaces struct {
	baseURL    string
	region     string // appended to text queries, e.g. "Singapore"
	httpClient *http.Client
}

// GoogleOption configures a GooglePlaces adapter.
type GoogleOption func(*GooglePlaces)

// WithGoogleBaseURL overrides the endpoint, used by tests.
func WithGoogleBaseURL(u string) GoogleOption {
	return func(g *GooglePlaces) { g.baseURL = u }
}

// NewGooglePlaces returns a Google Places adapter.
func NewGooglePlaces(region string, timeout time.Duration, opts ...GoogleOption) *GooglePlaces {
	g := &GooglePlaces{
		baseURL:    googleBaseURL,
		region:     region,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GooglePlaces) Name() listing.Source { return listing.SourceGoogle }

func (g *GooglePlaces) Enabled(creds listing.Credentials) bool {
	return strings.TrimSpace(creds.Google) != ""
}

type googleCircle struct {
	Center struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"center"`
	Radius float64 `json:"radius"`
}

type googlePlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Rating     float64 `json:"rating"`
	PriceLevel string  `json:"priceLevel"`
	Photos     []struct {
		Name string `json:"name"`
	} `json:"photos"`
	CurrentOpeningHours struct {
		OpenNow *bool `json:"openNow"`
	} `json:"currentOpeningHours"`
	BusinessStatus string `json:"businessStatus"`
}

type googleResponse struct {
	Places []googlePlace `json:"places"`
}

func (g *GooglePlaces) Search(ctx context.Context, req listing.SearchRequest) ([]listing.Listing, error) {
	radius := float64(req.RadiusMeters)
	if radius > googleMaxRadiusM {
		radius = googleMaxRadiusM
	}

	circle := googleCircle{Radius: radius}
	circle.Center.Latitude = req.Origin.Lat
	circle.Center.Longitude = req.Origin.Lon

	var path string
	var payload map[string]any
	if term := strings.TrimSpace(req.Term); term != "" {
		path = "/v1/places:searchText"
		query := term + " restaurant"
		if g.region != "" {
			query += " " + g.region
		}
		payload = map[string]any{
			"textQuery":      query,
			"locationBias":   map[string]any{"circle": circle},
			"maxResultCount": 50,
		}
	} else {
		path = "/v1/places:searchNearby"
		payload = map[string]any{
			"includedTypes":       []string{"restaurant"},
			"maxResultCount":      50,
			"locationRestriction": map[string]any{"circle": circle},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding google request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building google request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", strings.TrimSpace(req.Credentials.Google))
	httpReq.Header.Set("X-Goog-FieldMask", googleFieldMask)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google status %d", resp.StatusCode)
	}

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding google response: %w", err)
	}

	results := make([]listing.Listing, 0, len(decoded.Places))
	for _, place := range decoded.Places {
		address := place.FormattedAddress
		if address == "" {
			address = listing.AddressUnavailable
		}

		l := listing.Listing{
			Name:     place.DisplayName.Text,
			Coords:   geo.Coordinates{Lat: place.Location.Latitude, Lon: place.Location.Longitude},
			Cuisine:  listing.CuisineUnspecified,
			Address:  address,
			Rating:   place.Rating,
			Price:    googlePrice(place.PriceLevel),
			PhotoURL: g.photoURL(place, req.Credentials.Google),
			Open:     googleOpenState(place),
			Source:   listing.SourceGoogle,
			NativeID: place.ID,
		}
		if l.Name == "" {
			l.Name = "Unnamed"
		}

		if accept(req, &l, "restaurant") {
			results = append(results, l)
		}
	}
	return results, nil
}

func (g *GooglePlaces) photoURL(place googlePlace, key string) string {
	if len(place.Photos) == 0 || place.Photos[0].Name == "" {
		return ""
	}
	return fmt.Sprintf("%s/v1/%s/media?key=%s&maxHeightPx=400", g.baseURL, place.Photos[0].Name, strings.TrimSpace(key))
}

func googlePrice(level string) listing.PriceTier {
	switch level {
	case "PRICE_LEVEL_INEXPENSIVE":
		return listing.PriceCheap
	case "PRICE_LEVEL_MODERATE":
		return listing.PriceModerate
	case "PRICE_LEVEL_EXPENSIVE":
		return listing.PriceExpensive
	case "PRICE_LEVEL_VERY_EXPENSIVE":
		return listing.PricePremium
	default:
		return listing.PriceUnknown
	}
}

func googleOpenState(place googlePlace) listing.OpenState {
	if place.BusinessStatus == "CLOSED_PERMANENTLY" {
		return listing.PermanentlyClosed
	}
	if place.CurrentOpeningHours.OpenNow == nil {
		return listing.OpenUnknown
	}
	if *place.CurrentOpeningHours.OpenNow {
		return listing.OpenNow
	}
	return listing.ClosedNow
}
