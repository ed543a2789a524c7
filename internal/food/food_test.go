package food

import "testing"

func TestDenyOverridesAllow(t *testing.T) {
	// "Cheers" stores are tagged as convenience/food by some providers.
	if IsFoodVenue("Cheers", "Convenience Store, Food") {
		t.Error("deny keyword should override allow keyword")
	}
	if IsFoodVenue("7-Eleven Tampines", "Food and Beverage") {
		t.Error("convenience brand should be rejected")
	}
}

func TestIsFoodVenueAllows(t *testing.T) {
	if !IsFoodVenue("Tian Tian Chicken Rice", "Hawker Stall") {
		t.Error("hawker stall should classify as food")
	}
	if !IsFoodVenue("Burnt Ends", "Restaurant") {
		t.Error("restaurant category should classify as food")
	}
}

func TestIsFoodVenueNoSignal(t *testing.T) {
	// Nothing in name or category either way: trust the provider filter.
	if !IsFoodVenue("Ah Hock", "") {
		t.Error("neutral venue should pass through")
	}
}

func TestMatchTerm(t *testing.T) {
	tests := []struct {
		term, name, cuisine string
		want                MatchKind
	}{
		{"sushi", "Sushi Tei", "Japanese", MatchName},
		{"sushi", "Tei", "Sushi, Japanese", MatchCuisine},
		{"sushi", "Maru Dine", "Japanese", MatchAssociation},
		{"chicken rice", "Boon Tong Kee Chicken", "Chinese", MatchPartial},
		{"chicken rice", "Chicken Rice Stall", "", MatchName},
		{"chicken rice", "Rice Garden Chicken House", "", MatchNameTokens},
		{"chicken rice", "Golden Palace", "Hainanese", MatchAssociation},
		{"sushi", "Tandoori Palace", "Indian", MatchNone},
		{"", "Anything", "Anything", MatchNone},
	}
	for _, tt := range tests {
		if got := MatchTerm(tt.term, tt.name, tt.cuisine); got != tt.want {
			t.Errorf("MatchTerm(%q, %q, %q) = %v, want %v",
				tt.term, tt.name, tt.cuisine, got, tt.want)
		}
	}
}

func TestContradicts(t *testing.T) {
	if kw := Contradicts("sushi", "Tandoori Palace", "Indian"); kw != "indian" {
		t.Errorf("expected indian contradiction, got %q", kw)
	}
	if kw := Contradicts("sushi", "Golden Steamboat", ""); kw != "steamboat" {
		t.Errorf("expected steamboat contradiction, got %q", kw)
	}
	if kw := Contradicts("sushi", "Sushi Tei", "Japanese"); kw != "" {
		t.Errorf("expected no contradiction, got %q", kw)
	}
	if kw := Contradicts("nonexistent-term", "Any", "Any"); kw != "" {
		t.Errorf("unknown term should never contradict, got %q", kw)
	}
}

func TestSuspiciousName(t *testing.T) {
	if kw := SuspiciousName("Guardian Pharmacy"); kw == "" {
		t.Error("pharmacy brand should be suspicious")
	}
	if kw := SuspiciousName("Joo Chiat Laksa"); kw != "" {
		t.Errorf("clean name flagged: %q", kw)
	}
}

func TestSpecificDish(t *testing.T) {
	if !SpecificDish("sushi") {
		t.Error("sushi is a specific dish")
	}
	if !SpecificDish("  Laksa ") {
		t.Error("term should be trimmed and lowercased")
	}
	if SpecificDish("dinner") {
		t.Error("generic term is not a specific dish")
	}
}
