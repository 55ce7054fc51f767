package dto

type RankedRestaurantResponse struct {
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	DistanceKm   float64 `json:"distance_km"`
}

type MatchingResponse struct {
	Status      string                     `json:"status"`
	Restaurants []RankedRestaurantResponse `json:"restaurants"`
}

type CookingRestaurantResponse struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
}

type OpenOrderResponse struct {
	OrderID           int                        `json:"order_id"`
	Status            string                     `json:"status"`
	PaymentMethod     string                     `json:"payment_method"`
	Client            string                     `json:"client"`
	Phonenumber       string                     `json:"phonenumber"`
	Address           string                     `json:"address"`
	Comment           string                     `json:"comment,omitempty"`
	TotalPrice        float64                    `json:"total_price"`
	CookingRestaurant *CookingRestaurantResponse `json:"cooking_restaurant,omitempty"`
	Matching          *MatchingResponse          `json:"matching,omitempty"`
}

type ListOpenOrdersResponse struct {
	Orders []OpenOrderResponse `json:"orders"`
}

type RestaurantResponse struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
}

type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

type ProductAvailabilityResponse struct {
	ProductID    int     `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability []bool  `json:"availability"`
}

type ProductMatrixResponse struct {
	Restaurants []RestaurantResponse          `json:"restaurants"`
	Products    []ProductAvailabilityResponse `json:"products"`
}
