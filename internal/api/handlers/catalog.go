package handlers

import (
	"log"
	"net/http"

	"restaurant-match-service/internal/api/dto"
	"restaurant-match-service/internal/ports"
)

// CatalogHandler exposes read-only restaurant and product endpoints.
type CatalogHandler struct {
	Catalog ports.CatalogRepository
}

func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRestaurantsResponse{
		Restaurants: make([]dto.RestaurantResponse, 0, len(restaurants)),
	}
	for _, restaurant := range restaurants {
		res.Restaurants = append(res.Restaurants, dto.RestaurantResponse{
			RestaurantID: restaurant.RestaurantID,
			Name:         restaurant.Name,
			Address:      restaurant.Address,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ProductMatrix returns, for every product, its availability across all
// restaurants in restaurant listing order.
func (h *CatalogHandler) ProductMatrix(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	menu, err := h.Catalog.MenuAvailability(r.Context())
	if err != nil {
		log.Printf("menu availability failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ProductMatrixResponse{
		Restaurants: make([]dto.RestaurantResponse, 0, len(restaurants)),
		Products:    make([]dto.ProductAvailabilityResponse, 0, len(products)),
	}
	for _, restaurant := range restaurants {
		res.Restaurants = append(res.Restaurants, dto.RestaurantResponse{
			RestaurantID: restaurant.RestaurantID,
			Name:         restaurant.Name,
			Address:      restaurant.Address,
		})
	}

	for _, product := range products {
		availability := make([]bool, 0, len(restaurants))
		for _, restaurant := range restaurants {
			_, ok := menu[restaurant.RestaurantID][product.ProductID]
			availability = append(availability, ok)
		}
		res.Products = append(res.Products, dto.ProductAvailabilityResponse{
			ProductID:    product.ProductID,
			Name:         product.Name,
			Price:        product.Price,
			Availability: availability,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
