// Package score assigns each listing a relevance score for the searched
// term, a derived confidence label, and human-readable warnings. Scoring is
// a pure function of the listing, the term and the policy.
package score

import (
	"fmt"

	"github.com/un1queA/LETHIMCOOK/internal/food"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

// Policy holds every bonus, penalty and threshold. The magnitudes are tuning
// choices, not contracts, so they load from config rather than being baked
// in. Zero value is unusable; start from DefaultPolicy.
type Policy struct {
	Baseline int `yaml:"baseline"`

	// Data-quality bonuses, evaluated independently.
	RatingBonus  int `yaml:"rating_bonus"`
	PriceBonus   int `yaml:"price_bonus"`
	AddressBonus int `yaml:"address_bonus"`
	CuisineBonus int `yaml:"cuisine_bonus"`

	// Term-relevance adjustments.
	NameMatchBonus     int `yaml:"name_match_bonus"`
	NameTokensBonus    int `yaml:"name_tokens_bonus"`
	CuisineMatchBonus  int `yaml:"cuisine_match_bonus"`
	AssociationBonus   int `yaml:"association_bonus"`
	PartialMatchBonus  int `yaml:"partial_match_bonus"`
	NoMatchPenalty     int `yaml:"no_match_penalty"`
	MissedDishPenalty  int `yaml:"missed_dish_penalty"`
	ContradictionPenalty int `yaml:"contradiction_penalty"`

	// Source-reliability bonus per provider.
	SourceBonus map[listing.Source]int `yaml:"source_bonus"`

	// Status adjustments.
	PermanentlyClosedPenalty int `yaml:"permanently_closed_penalty"`
	ClosedPenalty            int `yaml:"closed_penalty"`
	OpenBonus                int `yaml:"open_bonus"`

	// Distance adjustments.
	NearBonus     int     `yaml:"near_bonus"`      // under NearKm
	NearKm        float64 `yaml:"near_km"`
	CloseBonus    int     `yaml:"close_bonus"`     // under CloseKm
	CloseKm       float64 `yaml:"close_km"`
	FarPenalty    int     `yaml:"far_penalty"`     // beyond FarFraction of radius
	FarFraction   float64 `yaml:"far_fraction"`

	SuspiciousPenalty int `yaml:"suspicious_penalty"`

	// Filter thresholds. WithTermThreshold must be >= NoTermThreshold.
	WithTermThreshold int `yaml:"with_term_threshold"`
	NoTermThreshold   int `yaml:"no_term_threshold"`
}

// DefaultPolicy returns the default scoring numbers.
func DefaultPolicy() Policy {
	return Policy{
		Baseline: 50,

		RatingBonus:  15,
		PriceBonus:   5,
		AddressBonus: 10,
		CuisineBonus: 10,

		NameMatchBonus:       35,
		NameTokensBonus:      25,
		CuisineMatchBonus:    30,
		AssociationBonus:     20,
		PartialMatchBonus:    10,
		NoMatchPenalty:       15,
		MissedDishPenalty:    50,
		ContradictionPenalty: 40,

		SourceBonus: map[listing.Source]int{
			listing.SourceFoursquare: 10,
			listing.SourceGoogle:     8,
			listing.SourceOSM:        3,
		},

		PermanentlyClosedPenalty: 50,
		ClosedPenalty:            5,
		OpenBonus:                5,

		NearBonus:   10,
		NearKm:      0.5,
		CloseBonus:  5,
		CloseKm:     1.0,
		FarPenalty:  5,
		FarFraction: 0.9,

		SuspiciousPenalty: 40,

		WithTermThreshold: 50,
		NoTermThreshold:   40,
	}
}

// Threshold returns the filter cutoff for a search, higher when a specific
// term was supplied than when browsing.
func (p Policy) Threshold(term string) int {
	if term != "" {
		return p.WithTermThreshold
	}
	return p.NoTermThreshold
}

// confidence label thresholds, monotonic over the score range.
var confidenceTiers = []struct {
	min   int
	label string
}{
	{80, "Very High"},
	{65, "High"},
	{55, "Medium"},
	{45, "Low"},
}

// Confidence maps a score to its label tier.
func Confidence(score int) string {
	for _, tier := range confidenceTiers {
		if score >= tier.min {
			return tier.label
		}
	}
	return "Very Low"
}

// Score evaluates one listing against the term under the policy and returns
// a copy with Score, Confidence and Warnings populated. Deterministic; the
// input is not mutated.
func Score(l listing.Listing, term string, p Policy, radiusKm float64) listing.Listing {
	score := p.Baseline
	var warnings []string

	// Data quality.
	if l.Rating > 0 {
		score += p.RatingBonus
	}
	if l.Price != listing.PriceUnknown {
		score += p.PriceBonus
	}
	if l.HasAddress() {
		score += p.AddressBonus
	}
	if l.HasCuisine() {
		score += p.CuisineBonus
	}

	// Term relevance.
	if term != "" {
		switch food.MatchTerm(term, l.Name, l.Cuisine) {
		case food.MatchName:
			score += p.NameMatchBonus
		case food.MatchCuisine:
			score += p.CuisineMatchBonus
		case food.MatchNameTokens:
			score += p.NameTokensBonus
		case food.MatchAssociation:
			score += p.AssociationBonus
		case food.MatchPartial:
			score += p.PartialMatchBonus
			warnings = append(warnings, fmt.Sprintf("partial match for %q", term))
		case food.MatchNone:
			if food.SpecificDish(term) {
				score -= p.MissedDishPenalty
			} else {
				score -= p.NoMatchPenalty
			}
			warnings = append(warnings, fmt.Sprintf("%q not found in name or cuisine", term))
		}

		if kw := food.Contradicts(term, l.Name, l.Cuisine); kw != "" {
			score -= p.ContradictionPenalty
			warnings = append(warnings, fmt.Sprintf("cuisine %q contradicts %q", kw, term))
		}
	}

	// Source reliability.
	score += p.SourceBonus[l.Source]

	// Open status.
	switch l.Open {
	case listing.PermanentlyClosed:
		score -= p.PermanentlyClosedPenalty
		warnings = append(warnings, "permanently closed")
	case listing.ClosedNow:
		score -= p.ClosedPenalty
	case listing.OpenNow:
		score += p.OpenBonus
	}

	// Distance.
	switch {
	case l.DistanceKm < p.NearKm:
		score += p.NearBonus
	case l.DistanceKm < p.CloseKm:
		score += p.CloseBonus
	case radiusKm > 0 && l.DistanceKm > p.FarFraction*radiusKm:
		score -= p.FarPenalty
	}

	// Known non-restaurant brands, in case an adapter's category filter
	// missed one.
	if kw := food.SuspiciousName(l.Name); kw != "" {
		score -= p.SuspiciousPenalty
		warnings = append(warnings, fmt.Sprintf("name contains non-restaurant keyword %q", kw))
	}

	l.Score = score
	l.Confidence = Confidence(score)
	l.Warnings = warnings
	return l
}
