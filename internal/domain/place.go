package domain

import "time"

// PlaceEntry is one row of the persistent geocode cache: a free-text address
// mapped to coordinates once resolved. The address is the cache key verbatim;
// no normalization is applied, so differently formatted strings for the same
// place are distinct entries.
//
// Coordinates is nil until a geocoding attempt succeeds. An entry moves from
// unresolved to resolved at most once and is never deleted by this service.
type PlaceEntry struct {
	Address     string
	Coordinates *Coordinates
	UpdatedAt   time.Time
}
