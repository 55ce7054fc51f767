package domain

// Restaurant is a kitchen that can be assigned orders. The address is used
// as a geocode cache key when ranking by distance.
type Restaurant struct {
	RestaurantID int
	Name         string
	Address      string
}

// Product is a menu item referenced by identity in eligibility checks.
type Product struct {
	ProductID int
	Name      string
	Price     float64
}

// MenuAvailability maps restaurant ID to the set of product IDs the
// restaurant currently offers. Only available menu items appear here.
type MenuAvailability map[int]map[int]struct{}
