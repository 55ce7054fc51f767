package services

import "restaurant-match-service/internal/domain"

// EligibleRestaurants returns the restaurants whose available-product set
// covers every product in orderProducts. Quantities are irrelevant: a
// restaurant supplies arbitrary quantities of anything it offers.
//
// The eligible set is the intersection, over all ordered products, of the
// restaurants offering that product. An empty orderProducts means "no
// constraint" and returns every restaurant present in the menu.
func EligibleRestaurants(
	orderProducts map[int]struct{},
	menu domain.MenuAvailability,
) map[int]struct{} {
	eligible := make(map[int]struct{}, len(menu))
	for restaurantID := range menu {
		eligible[restaurantID] = struct{}{}
	}

	for productID := range orderProducts {
		for restaurantID := range eligible {
			if _, ok := menu[restaurantID][productID]; !ok {
				delete(eligible, restaurantID)
			}
		}
		// Once the running intersection is empty no further product can
		// bring a restaurant back.
		if len(eligible) == 0 {
			return eligible
		}
	}

	return eligible
}
