// Package fusion runs the multi-provider search pipeline: concurrent fetch,
// deduplication, scoring, filtering and ranking.
package fusion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/un1queA/LETHIMCOOK/internal/dedupe"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
	"github.com/un1queA/LETHIMCOOK/internal/provider"
	"github.com/un1queA/LETHIMCOOK/internal/score"
)

// Result is one completed search: the ranked surviving listings and the
// stats describing everything that happened on the way.
type Result struct {
	Listings []listing.Listing
	Stats    listing.SearchStats
}

// Orchestrator fans a search request out to the configured provider
// adapters and fuses their results. Stateless between searches; safe for
// concurrent independent requests.
type Orchestrator struct {
	adapters []provider.Adapter
	policy   score.Policy
	timeout  time.Duration // per-provider fetch budget
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPolicy overrides the default scoring policy.
func WithPolicy(p score.Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithProviderTimeout bounds each provider's fetch.
func WithProviderTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// New returns an orchestrator over the given adapters.
func New(adapters []provider.Adapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		adapters: adapters,
		policy:   score.DefaultPolicy(),
		timeout:  20 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Policy returns the scoring policy in use.
func (o *Orchestrator) Policy() score.Policy { return o.policy }

// Search runs the pipeline end to end. Provider failures never fail the
// search: a failed or credential-less provider contributes zero listings and
// the stats show the full path of every record.
func (o *Orchestrator) Search(ctx context.Context, req listing.SearchRequest) (Result, error) {
	stats := listing.SearchStats{PerProvider: make(map[listing.Source]int)}
	for _, a := range o.adapters {
		stats.PerProvider[a.Name()] = 0
	}

	// Results land in a slot per adapter and are concatenated in adapter
	// order after the wait, so the pipeline input order is identical
	// between runs regardless of which provider answers first.
	slots := make([][]listing.Listing, len(o.adapters))
	errs := make([]error, len(o.adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range o.adapters {
		if !adapter.Enabled(req.Credentials) {
			continue
		}
		i, adapter := i, adapter
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, o.timeout)
			defer cancel()

			slots[i], errs[i] = adapter.Search(fetchCtx, req)
			return nil
		})
	}
	g.Wait()

	var raw []listing.Listing
	for i, adapter := range o.adapters {
		if !adapter.Enabled(req.Credentials) {
			continue
		}
		if errs[i] != nil {
			stats.Warnings = append(stats.Warnings,
				fmt.Sprintf("%s: %v", adapter.Name(), errs[i]))
			continue
		}
		stats.PerProvider[adapter.Name()] = len(slots[i])
		raw = append(raw, slots[i]...)
	}

	if err := ctx.Err(); err != nil {
		return Result{Stats: stats}, err
	}

	stats.Raw = len(raw)

	deduped := dedupe.Listings(raw)
	stats.Duplicates = stats.Raw - len(deduped)

	threshold := o.policy.Threshold(req.Term)
	scored := make([]listing.Listing, 0, len(deduped))
	for _, l := range deduped {
		s := score.Score(l, req.Term, o.policy, req.RadiusKm())
		if s.Score >= threshold {
			scored = append(scored, s)
		}
	}
	stats.Filtered = len(deduped) - len(scored)

	// Score descending, then distance ascending; SliceStable keeps input
	// order for full ties.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].DistanceKm < scored[j].DistanceKm
	})

	stats.Final = len(scored)
	return Result{Listings: scored, Stats: stats}, nil
}
