// Package geocode resolves free-text addresses to coordinates through the
// Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/un1queA/LETHIMCOOK/internal/geo"
)

// ErrNotFound means the address resolved to nothing. Timeouts, transport
// errors and empty result sets all collapse into this: the caller only needs
// to know there is no location.
var ErrNotFound = errors.New("location not found")

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "lethimcook/1.0"
	cacheSize      = 256
)

// Result is a resolved address.
type Result struct {
	Coords      geo.Coordinates
	DisplayName string
}

// Client geocodes against Nominatim, restricted to one country. A small LRU
// keyed by the normalised query absorbs repeat lookups within a process;
// concurrent writers to the same key race benignly.
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	cache       *lru.Cache[string, Result]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Nominatim endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a geocoding client limited to the given ISO country code
// (empty means worldwide).
func NewClient(countryCode string, opts ...Option) *Client {
	cache, _ := lru.New[string, Result](cacheSize)
	c := &Client{
		baseURL:     defaultBaseURL,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		cache:       cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves address to coordinates. A single bounded call, no retry;
// any failure is ErrNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (Result, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))
	if key == "" {
		return Result{}, ErrNotFound
	}
	if r, ok := c.cache.Get(key); ok {
		return r, nil
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if c.countryCode != "" {
		q.Set("countrycodes", c.countryCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, ErrNotFound
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Result{}, ErrNotFound
	}
	if len(results) == 0 {
		return Result{}, ErrNotFound
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return Result{}, ErrNotFound
	}

	r := Result{
		Coords:      geo.Coordinates{Lat: lat, Lon: lon},
		DisplayName: results[0].DisplayName,
	}
	if !r.Coords.Valid() {
		return Result{}, ErrNotFound
	}

	c.cache.Add(key, r)
	return r, nil
}
