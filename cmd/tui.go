package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/un1queA/LETHIMCOOK/internal/cache"
	"github.com/un1queA/LETHIMCOOK/internal/config"
	"github.com/un1queA/LETHIMCOOK/internal/fusion"
	"github.com/un1queA/LETHIMCOOK/internal/geocode"
	"github.com/un1queA/LETHIMCOOK/internal/provider"
	"github.com/un1queA/LETHIMCOOK/internal/tui"
)

// newOrchestrator assembles the provider adapters from config. Adapters
// missing credentials still register so the stats can report them skipped.
func newOrchestrator(cfg *config.Config) *fusion.Orchestrator {
	timeout := cfg.ProviderTimeoutDuration()
	adapters := []provider.Adapter{
		provider.NewFoursquare(timeout),
		provider.NewGooglePlaces(cfg.Region, timeout),
		provider.NewOverpass(timeout),
	}
	return fusion.New(adapters,
		fusion.WithPolicy(cfg.Scoring),
		fusion.WithProviderTimeout(timeout),
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	return tui.Run(tui.RunOpts{
		Cfg:      cfg,
		Store:    store,
		Geocoder: geocode.NewClient(cfg.CountryCode),
		Orch:     newOrchestrator(cfg),
		Address:  flagAddress,
		Term:     flagTerm,
		RadiusKm: flagRadius,
	})
}
