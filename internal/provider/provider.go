// Package provider implements the three geographic data source adapters.
// Each adapter normalises its provider's records into the common Listing
// shape and enforces radius and food-relevance filtering locally, because
// provider-side radius filters are unreliable.
package provider

import (
	"context"

	"github.com/un1queA/LETHIMCOOK/internal/food"
	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

// Adapter is a single data source. Search returns normalised listings whose
// recomputed distance is within the request radius; a whole-request failure
// returns an error that the orchestrator downgrades to a warning.
type Adapter interface {
	Name() listing.Source
	// Enabled reports whether the request carries the credentials this
	// adapter needs. A disabled adapter is skipped, not an error.
	Enabled(creds listing.Credentials) bool
	Search(ctx context.Context, req listing.SearchRequest) ([]listing.Listing, error)
}

// accept runs the shared per-record checks: valid coordinates, locally
// recomputed distance within radius, food classification (deny overrides
// allow), and the term pre-filter. It fills DistanceKm on success.
func accept(req listing.SearchRequest, l *listing.Listing, category string) bool {
	if l.Coords.IsZero() || !l.Coords.Valid() {
		return false
	}

	l.DistanceKm = geo.DistanceKm(req.Origin, l.Coords)
	if l.DistanceKm > req.RadiusKm() {
		return false
	}

	if !food.IsFoodVenue(l.Name, category) {
		return false
	}

	if req.Term != "" {
		if food.Contradicts(req.Term, l.Name, l.Cuisine) != "" {
			return false
		}
		if food.MatchTerm(req.Term, l.Name, l.Cuisine) == food.MatchNone {
			return false
		}
	}

	return true
}
