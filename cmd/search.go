package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/un1queA/LETHIMCOOK/internal/cache"
	"github.com/un1queA/LETHIMCOOK/internal/config"
	"github.com/un1queA/LETHIMCOOK/internal/geocode"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

var (
	flagSearchTerm   string
	flagSearchRadius int
	flagSearchLimit  int
)

var searchCmd = &cobra.Command{
	Use:   "search <address>",
	Short: "Run one search and print the ranked results",
	Long: `Search without the TUI: geocode the address, query all providers,
and print the fused ranking to stdout. Useful for scripting.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchTerm, "term", "", "what you are craving, e.g. sushi")
	searchCmd.Flags().IntVar(&flagSearchRadius, "radius", 0, "search radius in km")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 10, "max results to print")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	address := strings.Join(args, " ")
	radiusKm := flagSearchRadius
	if radiusKm <= 0 {
		radiusKm = cfg.DefaultRadiusKm
	}
	radiusKm = cfg.ClampRadiusKm(radiusKm)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	origin, display, err := geocode.Resolve(ctx, store, geocode.NewClient(cfg.CountryCode), address)
	if err != nil {
		return err
	}
	fmt.Printf("Searching %d km around %s...\n", radiusKm, display)

	orch := newOrchestrator(cfg)
	result, err := orch.Search(ctx, listing.SearchRequest{
		Origin:       origin,
		RadiusMeters: radiusKm * 1000,
		Term:         flagSearchTerm,
		Credentials:  cfg.Credentials(),
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	store.LogSearch(cache.SearchRecord{
		Address:    address,
		Term:       flagSearchTerm,
		RadiusKm:   float64(radiusKm),
		Foursquare: result.Stats.PerProvider[listing.SourceFoursquare],
		Google:     result.Stats.PerProvider[listing.SourceGoogle],
		OSM:        result.Stats.PerProvider[listing.SourceOSM],
		Duplicates: result.Stats.Duplicates,
		Final:      result.Stats.Final,
		SearchedAt: time.Now(),
	})

	for _, w := range result.Stats.Warnings {
		fmt.Printf("  [warn] %s\n", w)
	}

	printResults(result.Listings, flagSearchLimit)
	fmt.Printf("\n%d raw, %d merged, %d filtered, %d final\n",
		result.Stats.Raw, result.Stats.Duplicates, result.Stats.Filtered, result.Stats.Final)
	return nil
}

func printResults(results []listing.Listing, limit int) {
	if len(results) == 0 {
		fmt.Println("\nNo restaurants found. Try a larger radius or a different craving.")
		return
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	fmt.Println()
	for i, l := range results {
		fmt.Printf("%2d. %-40s %5.2f km  %3d  %s  %s\n",
			i+1, trimTo(l.Name, 40), l.DistanceKm, l.Score, l.Confidence, sourceTags(l.Sources))
		detail := l.Cuisine
		if l.HasAddress() {
			detail += " · " + l.Address
		}
		fmt.Printf("    %s\n", trimTo(detail, 76))
		for _, w := range l.Warnings {
			fmt.Printf("    [warn] %s\n", w)
		}
	}
}

func sourceTags(sources []listing.Source) string {
	tags := make([]string, 0, len(sources))
	for _, s := range sources {
		tags = append(tags, string(s))
	}
	return strings.Join(tags, ",")
}

func trimTo(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

