package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"

	"restaurant-match-service/internal/domain"
	"restaurant-match-service/internal/platform/obs"
	"restaurant-match-service/internal/ports"
)

// CachedGeocoder implements the CoordinateResolver port: a persistent
// place store in front of an external geocoder.
//
// Addresses are cache keys verbatim; no trimming or case folding, so hit
// rates depend on callers sending consistent strings (accepted imprecision).
// A failed geocode leaves the entry unresolved and is re-attempted on the
// next Resolve for that address — there is no negative caching.
//
// The store provides all synchronization (atomic get-or-create, single-row
// coordinate writes); no lock is held here across the blocking provider
// call.
type CachedGeocoder struct {
	store    ports.PlaceStore
	geocoder ports.Geocoder
}

func NewCachedGeocoder(store ports.PlaceStore, geocoder ports.Geocoder) (*CachedGeocoder, error) {
	if store == nil {
		return nil, errors.New("cached geocoder: store is nil")
	}
	if geocoder == nil {
		return nil, errors.New("cached geocoder: geocoder is nil")
	}

	return &CachedGeocoder{store: store, geocoder: geocoder}, nil
}

// Resolve returns the coordinates for address, geocoding and persisting them
// on a cache miss. ok is false when the provider could not resolve the
// address; the error return is reserved for store faults.
func (c *CachedGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	entry, err := c.store.GetOrCreate(ctx, address)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("resolve %q: place store: %w", address, err)
	}

	// Cache hit: no provider call. Restaurant addresses in particular repeat
	// across many orders, which is the point of this component.
	if entry.Coordinates != nil {
		return *entry.Coordinates, true, nil
	}

	coords, err := c.geocoder.Geocode(ctx, address)
	if err != nil {
		// Provider errors and unresolvable addresses are deliberately not
		// distinguished upstream; both read as a miss.
		log.Printf("addr=%q geocode failed: %v", address, err)
		return domain.Coordinates{}, false, nil
	}

	if err := c.store.SetCoordinates(ctx, address, coords); err != nil {
		// The coordinates are good even if persisting them failed; the next
		// call pays for another provider request.
		log.Printf("addr=%q place cache write failed: %v", address, err)
	}

	return coords, true, nil
}
