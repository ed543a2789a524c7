// Package listing defines the records that flow through the search pipeline:
// the Listing produced by provider adapters, the per-search request and
// statistics, and the Session handed back to the UI.
package listing

import (
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
)

// Source identifies which provider produced a listing.
type Source string

const (
	SourceFoursquare Source = "foursquare"
	SourceGoogle     Source = "google"
	SourceOSM        Source = "osm"
)

// AllSources returns the providers in display order.
func AllSources() []Source {
	return []Source{SourceFoursquare, SourceGoogle, SourceOSM}
}

// PriceTier is the $..$$$$ bucket, or empty when unknown.
type PriceTier string

const (
	PriceUnknown   PriceTier = ""
	PriceCheap     PriceTier = "$"
	PriceModerate  PriceTier = "$$"
	PriceExpensive PriceTier = "$$$"
	PricePremium   PriceTier = "$$$$"
)

// OpenState is the tri-state open-now indicator. PermanentlyClosed is kept
// separate so the scorer can bury venues that no longer exist.
type OpenState int

const (
	OpenUnknown OpenState = iota
	OpenNow
	ClosedNow
	PermanentlyClosed
)

// Placeholder values used when a provider has no data for a field.
const (
	AddressUnavailable = "unavailable"
	CuisineUnspecified = "unspecified"
)

// Listing is a single venue as normalised from one provider, enriched by the
// deduplicator and scorer on its way to the UI.
type Listing struct {
	Name    string
	Coords  geo.Coordinates
	Cuisine string
	Address string
	Rating  float64 // 0–5; 0 means unknown
	Price   PriceTier
	PhotoURL string
	Open     OpenState

	// Extra contact details, populated by the community source when tagged.
	Phone   string
	Website string
	Hours   string

	// DistanceKm from the query origin, recomputed locally by every
	// adapter before radius filtering.
	DistanceKm float64

	Source   Source
	NativeID string // provider's own record ID, strong dedup key

	// Populated after deduplication: every provider that contributed a
	// record for this venue.
	Sources []Source

	// Populated by the scorer.
	Score      int
	Confidence string
	Warnings   []string
}

// HasAddress reports whether the address is real data rather than a
// placeholder.
func (l Listing) HasAddress() bool {
	return l.Address != "" && l.Address != AddressUnavailable && l.Address != "N/A"
}

// HasCuisine reports whether the cuisine label carries information beyond a
// generic placeholder.
func (l Listing) HasCuisine() bool {
	switch l.Cuisine {
	case "", CuisineUnspecified, "Restaurant", "restaurant", "Food", "food", "Not specified":
		return false
	}
	return true
}

// Credentials holds the per-provider API keys. An empty key means that
// provider is skipped, which is a valid state, not an error.
type Credentials struct {
	Foursquare string
	Google     string
}

// SearchRequest is the ephemeral value object describing one search. Created
// per invocation, never persisted.
type SearchRequest struct {
	Origin       geo.Coordinates
	RadiusMeters int
	Term         string
	Credentials  Credentials
}

// RadiusKm returns the radius in kilometres.
func (r SearchRequest) RadiusKm() float64 {
	return float64(r.RadiusMeters) / 1000
}

// SearchStats records what happened to every listing on the way to the final
// result set. Raw − Duplicates is the deduped count; deduped − Filtered is
// the final count.
type SearchStats struct {
	PerProvider map[Source]int
	Raw         int
	Duplicates  int
	Filtered    int
	Final       int
	Warnings    []string
}

// Session is the explicit state the UI passes into a search and gets back:
// the resolved origin, the request that ran, the ranked results and their
// stats. The pipeline never owns UI-lifetime state.
type Session struct {
	Address     string
	DisplayName string
	Origin      geo.Coordinates
	Request     SearchRequest
	Results     []Listing
	Stats       SearchStats
	Selected    int // index into Results, -1 when nothing selected
	SearchedAt  time.Time
}

// NewSession returns an empty session with no selection.
func NewSession() Session {
	return Session{Selected: -1}
}
