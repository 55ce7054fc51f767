package domain

// RankStatus describes the outcome of ranking one order.
type RankStatus string

const (
	// RankOK: the order address resolved and eligible restaurants exist.
	// The ranking may still be empty if every eligible restaurant's own
	// address failed to geocode.
	RankOK RankStatus = "ok"
	// RankAddressUnresolved: the delivery address could not be geocoded.
	RankAddressUnresolved RankStatus = "address_unresolved"
	// RankNoEligibleRestaurant: no single restaurant offers every product
	// in the order.
	RankNoEligibleRestaurant RankStatus = "no_eligible_restaurant"
)

// RankedRestaurant pairs a restaurant with its straight-line distance from
// the delivery address. Transient output, never persisted.
type RankedRestaurant struct {
	Restaurant *Restaurant
	DistanceKm float64
}

// Ranking is the result of matching one order against the menu: a status and
// the eligible restaurants sorted by ascending distance.
type Ranking struct {
	Status      RankStatus
	Restaurants []RankedRestaurant
}
