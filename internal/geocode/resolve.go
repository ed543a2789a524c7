package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/un1queA/LETHIMCOOK/internal/cache"
	"github.com/un1queA/LETHIMCOOK/internal/geo"
)

// Resolve turns a free-form address into coordinates, preferring the
// persistent geocode cache over a network round trip and writing fresh
// results back for next time. A nil store disables caching.
func Resolve(ctx context.Context, store *cache.Store, client *Client, address string) (geo.Coordinates, string, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))

	if store != nil {
		if entry, ok, _ := store.GetGeocode(key); ok {
			return entry.Coords, entry.DisplayName, nil
		}
	}

	result, err := client.Geocode(ctx, address)
	if err != nil {
		return geo.Coordinates{}, "", fmt.Errorf("could not locate %q: %w", address, err)
	}

	if store != nil {
		store.PutGeocode(cache.GeocodeEntry{
			Query:       key,
			Coords:      result.Coords,
			DisplayName: result.DisplayName,
			FetchedAt:   time.Now(),
		})
	}

	return result.Coords, result.DisplayName, nil
}
