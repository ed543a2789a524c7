package score

import (
	"reflect"
	"testing"

	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

func baseListing() listing.Listing {
	return listing.Listing{
		Name:       "Sin Kee Chicken Rice",
		Coords:     geo.Coordinates{Lat: 1.3, Lon: 103.8},
		Cuisine:    "Hainanese",
		Address:    "1 Margaret Drive",
		Rating:     4.3,
		Price:      listing.PriceCheap,
		DistanceKm: 0.8,
		Source:     listing.SourceFoursquare,
	}
}

func TestScoreIsPure(t *testing.T) {
	l := baseListing()
	p := DefaultPolicy()

	a := Score(l, "chicken rice", p, 3)
	b := Score(l, "chicken rice", p, 3)
	if a.Score != b.Score {
		t.Errorf("score not deterministic: %d vs %d", a.Score, b.Score)
	}
	if !reflect.DeepEqual(a.Warnings, b.Warnings) {
		t.Errorf("warnings not deterministic: %v vs %v", a.Warnings, b.Warnings)
	}
	if l.Score != 0 || l.Confidence != "" {
		t.Error("input listing was mutated")
	}
}

func TestDataQualityBonuses(t *testing.T) {
	p := DefaultPolicy()

	rich := Score(baseListing(), "", p, 3)

	poor := baseListing()
	poor.Rating = 0
	poor.Price = listing.PriceUnknown
	poor.Address = listing.AddressUnavailable
	poor.Cuisine = listing.CuisineUnspecified
	poorScored := Score(poor, "", p, 3)

	wantDiff := p.RatingBonus + p.PriceBonus + p.AddressBonus + p.CuisineBonus
	if rich.Score-poorScored.Score != wantDiff {
		t.Errorf("quality bonus diff = %d, want %d", rich.Score-poorScored.Score, wantDiff)
	}
}

func TestTermMatchInName(t *testing.T) {
	p := DefaultPolicy()
	l := baseListing()

	matched := Score(l, "chicken rice", p, 3)
	unmatched := Score(l, "", p, 3)
	if matched.Score <= unmatched.Score {
		t.Errorf("name match should raise the score: %d vs %d", matched.Score, unmatched.Score)
	}
	if len(matched.Warnings) != 0 {
		t.Errorf("full match should carry no warnings, got %v", matched.Warnings)
	}
}

func TestNameTokensBonusBelowPhraseBonus(t *testing.T) {
	p := DefaultPolicy()

	phrase := baseListing() // "Sin Kee Chicken Rice" contains the phrase
	allTokens := baseListing()
	allTokens.Name = "Rice Garden Chicken House"

	phraseScored := Score(phrase, "chicken rice", p, 3)
	tokensScored := Score(allTokens, "chicken rice", p, 3)

	if phraseScored.Score-tokensScored.Score != p.NameMatchBonus-p.NameTokensBonus {
		t.Errorf("phrase vs all-tokens diff = %d, want %d",
			phraseScored.Score-tokensScored.Score, p.NameMatchBonus-p.NameTokensBonus)
	}
	if len(tokensScored.Warnings) != 0 {
		t.Errorf("all-tokens match should carry no warnings, got %v", tokensScored.Warnings)
	}
}

func TestPartialMatchWarns(t *testing.T) {
	l := baseListing()
	l.Name = "Boon Tong Kee Chicken"
	l.Cuisine = "Chinese"

	scored := Score(l, "chicken rice", DefaultPolicy(), 3)
	if len(scored.Warnings) == 0 {
		t.Fatal("partial match should record a warning")
	}
}

func TestContradictionBuriesListing(t *testing.T) {
	p := DefaultPolicy()
	l := baseListing()
	l.Name = "Tandoori Palace"
	l.Cuisine = "Indian"

	scored := Score(l, "sushi", p, 3)
	if scored.Score >= p.WithTermThreshold {
		t.Errorf("contradicted listing should fall below the with-term threshold, got %d", scored.Score)
	}

	foundContradiction := false
	for _, w := range scored.Warnings {
		if w == `cuisine "indian" contradicts "sushi"` {
			foundContradiction = true
		}
	}
	if !foundContradiction {
		t.Errorf("expected contradiction warning, got %v", scored.Warnings)
	}
}

func TestMissedSpecificDishPenalisedHarder(t *testing.T) {
	p := DefaultPolicy()
	l := baseListing()
	l.Name = "Corner Bistro"
	l.Cuisine = "western"

	dishMiss := Score(l, "laksa", p, 3)
	genericMiss := Score(l, "supper", p, 3)
	if dishMiss.Score >= genericMiss.Score {
		t.Errorf("missing a specific dish should cost more: %d vs %d",
			dishMiss.Score, genericMiss.Score)
	}
}

func TestPermanentlyClosed(t *testing.T) {
	p := DefaultPolicy()
	l := baseListing()
	l.Open = listing.PermanentlyClosed

	scored := Score(l, "", p, 3)
	open := l
	open.Open = listing.OpenNow
	openScored := Score(open, "", p, 3)

	if openScored.Score-scored.Score != p.PermanentlyClosedPenalty+p.OpenBonus {
		t.Errorf("closure adjustment off: %d vs %d", scored.Score, openScored.Score)
	}
	if len(scored.Warnings) == 0 {
		t.Error("permanent closure should record a warning")
	}
}

func TestDistanceBonus(t *testing.T) {
	p := DefaultPolicy()

	near := baseListing()
	near.DistanceKm = 0.3
	mid := baseListing()
	mid.DistanceKm = 0.8
	far := baseListing()
	far.DistanceKm = 2.9

	nearS := Score(near, "", p, 3).Score
	midS := Score(mid, "", p, 3).Score
	farS := Score(far, "", p, 3).Score

	if !(nearS > midS && midS > farS) {
		t.Errorf("distance ordering broken: %d, %d, %d", nearS, midS, farS)
	}
}

func TestSuspiciousNamePenalty(t *testing.T) {
	p := DefaultPolicy()
	clean := baseListing()
	suspect := baseListing()
	suspect.Name = "Guardian Pharmacy Margaret Drive"

	cleanScored := Score(clean, "", p, 3)
	scored := Score(suspect, "", p, 3)
	if cleanScored.Score-scored.Score != p.SuspiciousPenalty {
		t.Errorf("expected %d penalty, got diff %d", p.SuspiciousPenalty, cleanScored.Score-scored.Score)
	}
	if len(scored.Warnings) == 0 {
		t.Error("suspicious name should record a warning")
	}
}

func TestSourceBonusOrdering(t *testing.T) {
	p := DefaultPolicy()
	if !(p.SourceBonus[listing.SourceFoursquare] > p.SourceBonus[listing.SourceOSM]) {
		t.Error("commercial source bonus should exceed community source bonus")
	}
}

func TestThresholdOrdering(t *testing.T) {
	p := DefaultPolicy()
	if p.Threshold("sushi") < p.Threshold("") {
		t.Error("with-term threshold must be >= no-term threshold")
	}
}

func TestConfidenceMonotonic(t *testing.T) {
	prev := Confidence(100)
	labels := map[string]bool{prev: true}
	for s := 100; s >= 0; s-- {
		cur := Confidence(s)
		labels[cur] = true
		prev = cur
	}
	if len(labels) != 5 {
		t.Errorf("expected 5 confidence tiers over the score range, got %d", len(labels))
	}
	if Confidence(85) != "Very High" || Confidence(30) != "Very Low" {
		t.Errorf("tier boundaries wrong: %q %q", Confidence(85), Confidence(30))
	}
}
