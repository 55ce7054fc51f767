package ports

import (
	"context"
	"restaurant-match-service/internal/domain"
)

// Port: persistent storage for geocode cache entries, keyed by the exact
// address string.
type PlaceStore interface {
	// GetOrCreate returns the entry for address, creating an unresolved one
	// if none exists. Creation is atomic with respect to the one-entry-per-
	// address invariant: concurrent callers for the same address must not
	// produce duplicates.
	GetOrCreate(ctx context.Context, address string) (*domain.PlaceEntry, error)

	// SetCoordinates records resolved coordinates for an existing entry.
	// Writes are monotonic: entries go from unresolved to resolved and are
	// never cleared by this service.
	SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error
}

// CoordinateResolver is the cache-backed address resolution the ranking
// orchestrator depends on. ok is false when the address could not be
// geocoded (the miss is re-attempted on a later call, never negative-cached);
// the error return is reserved for storage faults.
type CoordinateResolver interface {
	Resolve(ctx context.Context, address string) (coords domain.Coordinates, ok bool, err error)
}
