// Package food holds the static heuristic tables that decide whether a venue
// is food-related and whether it plausibly serves a searched dish. Pure
// lookup data with predicate helpers; no state.
package food

import (
	"strings"

	"github.com/un1queA/LETHIMCOOK/internal/normalize"
)

// allowKeywords mark a category or name as food-related.
var allowKeywords = []string{
	"restaurant", "food", "cafe", "coffee", "bakery", "hawker", "noodle",
	"eatery", "eating house", "bistro", "diner", "bar", "pub", "kitchen",
	"grill", "steakhouse", "pizzeria", "sushi", "ramen", "dim sum",
	"dessert", "ice cream", "juice", "tea house", "bubble tea", "stall",
	"kopitiam", "zi char", "bbq", "buffet", "seafood", "vegetarian",
	"halal", "canteen",
}

// denyKeywords override the allow list. Retail, banking, medical, lodging
// and convenience-store brands routinely leak through provider category
// filters under generic "food" types.
var denyKeywords = []string{
	"7-eleven", "cheers", "supermarket", "grocery", "convenience",
	"minimart", "ntuc", "fairprice", "cold storage", "giant",
	"bank", "atm", "finance", "money changer",
	"clinic", "pharmacy", "hospital", "dental", "medical", "tcm",
	"hotel", "hostel", "serviced apartment", "resort",
	"laundry", "salon", "spa", "gym", "fitness",
	"petrol", "gas station", "car wash", "hardware",
	"school", "tuition", "church", "temple", "mosque",
}

// associations maps a searched food term to cuisine/name keywords that
// plausibly serve it. A venue matching any of these passes the term
// pre-filter even when the term itself is absent.
var associations = map[string][]string{
	"sushi":       {"japanese", "sashimi", "roll", "omakase", "izakaya"},
	"ramen":       {"japanese", "noodle"},
	"pizza":       {"italian", "pizzeria"},
	"pasta":       {"italian", "spaghetti"},
	"burger":      {"american", "fast food", "grill"},
	"curry":       {"indian", "thai", "japanese"},
	"dim sum":     {"chinese", "cantonese", "yum cha"},
	"dumpling":    {"chinese", "dim sum", "gyoza"},
	"satay":       {"malay", "indonesian", "bbq"},
	"laksa":       {"peranakan", "nonya", "noodle"},
	"chicken rice": {"hainanese", "chinese"},
	"pho":         {"vietnamese", "noodle"},
	"kebab":       {"turkish", "middle eastern"},
	"taco":        {"mexican", "tex-mex"},
	"steak":       {"steakhouse", "grill", "western"},
	"bak kut teh": {"chinese", "teochew"},
	"prata":       {"indian", "roti"},
	"hotpot":      {"steamboat", "chinese", "sichuan"},
}

// contradictions maps a searched term to cuisines/names that rule a venue
// out: searching "sushi" and finding "steamboat" in the cuisine means the
// venue is not what the user asked for.
var contradictions = map[string][]string{
	"sushi":   {"steamboat", "hotpot", "indian", "western", "pizza", "kebab"},
	"ramen":   {"indian", "pizza", "western", "mexican"},
	"pizza":   {"japanese", "chinese", "indian", "sushi", "dim sum"},
	"burger":  {"sushi", "dim sum", "indian vegetarian"},
	"curry":   {"pizzeria", "sushi"},
	"dim sum": {"indian", "western", "italian", "mexican"},
	"satay":   {"japanese", "italian"},
	"laksa":   {"japanese", "italian", "western"},
	"pho":     {"indian", "italian"},
	"taco":    {"chinese", "japanese", "indian"},
	"hotpot":  {"sushi", "italian", "indian"},
}

// suspiciousBrands are non-restaurant brand and keyword tokens that should
// never score as a dining venue regardless of provider category. Defense in
// depth behind the adapters' deny list.
var suspiciousBrands = []string{
	"7-eleven", "7eleven", "cheers", "fairprice", "cold storage",
	"guardian", "watsons", "unity",
	"bank", "atm", "clinic", "pharmacy", "dental",
	"hotel", "hostel", "laundromat", "laundry",
}

// specificDishes are well-known dish terms: a search for one of these that
// matches nothing in name or cuisine earns the heavier miss penalty.
var specificDishes = map[string]bool{
	"sushi": true, "ramen": true, "laksa": true, "satay": true,
	"pho": true, "prata": true, "bak kut teh": true, "chicken rice": true,
	"dim sum": true, "hotpot": true,
}

// IsFoodVenue classifies a venue from its category label and display name.
// Deny keywords override allow keywords.
func IsFoodVenue(name, category string) bool {
	text := strings.ToLower(name + " " + category)
	for _, kw := range denyKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	for _, kw := range allowKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	// No category signal either way: trust the provider's food filter.
	return true
}

// MatchKind describes how strongly a venue matches a searched term.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchPartial
	MatchAssociation
	MatchNameTokens
	MatchCuisine
	MatchName
)

// MatchTerm reports the strongest way the term matches the venue's name or
// cuisine. In order: full phrase in name, full phrase in cuisine, then for
// multi-word terms the token-subset check (all tokens present, or some),
// then the association table. A multi-word term with any token present is a
// subset verdict, never an association: "chicken rice" against a chicken
// stall is a partial match, not a cuisine association.
func MatchTerm(term, name, cuisine string) MatchKind {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return MatchNone
	}
	nameLower := strings.ToLower(name)
	cuisineLower := strings.ToLower(cuisine)

	if strings.Contains(nameLower, term) {
		return MatchName
	}
	if strings.Contains(cuisineLower, term) {
		return MatchCuisine
	}

	tokens := normalize.Tokens(term)
	if len(tokens) > 1 {
		hits := 0
		for _, tok := range tokens {
			if strings.Contains(nameLower, tok) || strings.Contains(cuisineLower, tok) {
				hits++
			}
		}
		if hits == len(tokens) {
			return MatchNameTokens
		}
		if hits > 0 {
			return MatchPartial
		}
	}

	for _, kw := range associations[term] {
		if strings.Contains(nameLower, kw) || strings.Contains(cuisineLower, kw) {
			return MatchAssociation
		}
	}

	return MatchNone
}

// Contradicts returns the conflicting keyword when the venue's name or
// cuisine is known to rule out the searched term, or "" when none applies.
func Contradicts(term, name, cuisine string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	text := strings.ToLower(name + " " + cuisine)
	for _, kw := range contradictions[term] {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}

// SuspiciousName returns the offending token when the name contains a known
// non-restaurant brand or keyword, or "" when the name looks clean.
func SuspiciousName(name string) string {
	nameLower := strings.ToLower(name)
	for _, kw := range suspiciousBrands {
		if strings.Contains(nameLower, kw) {
			return kw
		}
	}
	return ""
}

// SpecificDish reports whether the term is a well-known dish, which makes an
// outright miss more damning than a generic term would be.
func SpecificDish(term string) bool {
	return specificDishes[strings.ToLower(strings.TrimSpace(term))]
}
