// Package dedupe collapses near-duplicate listings reported by multiple
// providers into single entries.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/un1queA/LETHIMCOOK/internal/listing"
	"github.com/un1queA/LETHIMCOOK/internal/normalize"
)

// sourceAuthority ranks providers for survivor selection: the commercial
// APIs outweigh the community source.
var sourceAuthority = map[listing.Source]int{
	listing.SourceFoursquare: 3,
	listing.SourceGoogle:     2,
	listing.SourceOSM:        1,
}

// keys derives the three candidate match keys for a listing. Any one of
// them colliding with an earlier listing marks a duplicate.
func keys(l listing.Listing) []string {
	exact := l.Coords.Round(4)
	approx := l.Coords.Round(3)

	out := []string{
		fmt.Sprintf("e|%s|%.4f|%.4f", strings.ToLower(strings.TrimSpace(l.Name)), exact.Lat, exact.Lon),
		fmt.Sprintf("a|%s|%.3f|%.3f", normalize.Name(l.Name), approx.Lat, approx.Lon),
	}
	if l.NativeID != "" {
		out = append(out, fmt.Sprintf("i|%s:%s", l.Source, l.NativeID))
	}
	return out
}

// richness scores a listing for survivor selection. Selection by maximum
// richness keeps the merge commutative: the survivor depends on the set of
// attributes, not arrival order.
func richness(l listing.Listing) int {
	score := 0
	if l.HasAddress() {
		score += 10
	}
	score += sourceAuthority[l.Source]
	return score
}

// group is one set of records believed to be the same venue. Groups merge
// when a later listing bridges two of them; a merged-away group keeps a
// parent pointer to its absorber.
type group struct {
	survivor listing.Listing
	rich     int
	sources  map[listing.Source]bool
	order    int // position of the group's first appearance
	parent   *group
}

func (g *group) find() *group {
	for g.parent != nil {
		g = g.parent
	}
	return g
}

// absorb folds other into g: richest survivor wins, sources union, earliest
// first appearance kept.
func (g *group) absorb(other *group) {
	if other == g {
		return
	}
	if other.rich > g.rich {
		g.survivor = other.survivor
		g.rich = other.rich
	}
	for s := range other.sources {
		g.sources[s] = true
	}
	if other.order < g.order {
		g.order = other.order
	}
	other.parent = g
}

// Listings merges duplicates across providers. The survivor of each group is
// the richest record; its Sources field records every provider that
// contributed. A listing whose keys bridge two existing groups merges them,
// so matching is transitive. Idempotent, and never increases the listing
// count.
func Listings(in []listing.Listing) []listing.Listing {
	keyToGroup := make(map[string]*group)
	var groups []*group

	for i, l := range in {
		lKeys := keys(l)

		// Collect every distinct group this listing touches and merge
		// them into the earliest one.
		var g *group
		for _, k := range lKeys {
			found, ok := keyToGroup[k]
			if !ok {
				continue
			}
			root := found.find()
			if g == nil {
				g = root
			} else if root.order < g.order {
				root.absorb(g)
				g = root
			} else {
				g.absorb(root)
			}
		}

		if g == nil {
			g = &group{survivor: l, rich: richness(l), sources: map[listing.Source]bool{}, order: i}
			groups = append(groups, g)
		} else if r := richness(l); r > g.rich {
			g.survivor = l
			g.rich = r
		}

		g.sources[l.Source] = true
		for _, s := range l.Sources {
			g.sources[s] = true
		}

		// Record every key of every member so later listings matching any
		// variant still join this group.
		for _, k := range lKeys {
			keyToGroup[k] = g
		}
	}

	out := make([]listing.Listing, 0, len(groups))
	for _, g := range groups {
		if g.parent != nil {
			continue // merged into another group
		}
		survivor := g.survivor
		survivor.Sources = nil
		for _, s := range listing.AllSources() {
			if g.sources[s] {
				survivor.Sources = append(survivor.Sources, s)
			}
		}
		out = append(out, survivor)
	}
	return out
}
