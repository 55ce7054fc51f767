package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"restaurant-match-service/internal/api/dto"
	"restaurant-match-service/internal/domain"
	"restaurant-match-service/internal/ports"
	"restaurant-match-service/internal/services"
)

// OrderHandler exposes the open-orders dashboard and order registration.
type OrderHandler struct {
	Orders   ports.OrderRepository
	Catalog  ports.CatalogRepository
	Resolver ports.CoordinateResolver
}

// List returns every open order with its restaurant ranking: assigned
// kitchen if a manager already picked one, otherwise the distance-sorted
// candidates able to cook the whole order.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	rankings, err := services.RankOpenOrders(r.Context(), h.Orders, h.Catalog, h.Resolver)
	if err != nil {
		log.Printf("rank open orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	namesByID := make(map[int]string, len(restaurants))
	for _, restaurant := range restaurants {
		namesByID[restaurant.RestaurantID] = restaurant.Name
	}

	res := dto.ListOpenOrdersResponse{Orders: make([]dto.OpenOrderResponse, 0, len(rankings))}
	for _, entry := range rankings {
		order := entry.Order
		item := dto.OpenOrderResponse{
			OrderID:       order.OrderID,
			Status:        order.Status,
			PaymentMethod: order.PaymentMethod,
			Client:        strings.TrimSpace(order.Firstname + " " + order.Lastname),
			Phonenumber:   order.Phonenumber,
			Address:       order.Address,
			Comment:       order.Comment,
			TotalPrice:    order.TotalPrice(),
		}

		switch {
		case order.CookingRestaurantID != nil:
			item.CookingRestaurant = &dto.CookingRestaurantResponse{
				RestaurantID: *order.CookingRestaurantID,
				Name:         namesByID[*order.CookingRestaurantID],
			}
		case entry.Err != nil:
			// Storage fault while ranking this one order; render it as
			// unresolved instead of failing the whole listing.
			item.Matching = &dto.MatchingResponse{
				Status:      string(domain.RankAddressUnresolved),
				Restaurants: []dto.RankedRestaurantResponse{},
			}
		default:
			matching := &dto.MatchingResponse{
				Status:      string(entry.Ranking.Status),
				Restaurants: make([]dto.RankedRestaurantResponse, 0, len(entry.Ranking.Restaurants)),
			}
			for _, ranked := range entry.Ranking.Restaurants {
				matching.Restaurants = append(matching.Restaurants, dto.RankedRestaurantResponse{
					RestaurantID: ranked.Restaurant.RestaurantID,
					Name:         ranked.Restaurant.Name,
					DistanceKm:   ranked.DistanceKm,
				})
			}
			item.Matching = matching
		}

		res.Orders = append(res.Orders, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Register validates and persists an inbound order.
func (h *OrderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterOrderRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	required := map[string]string{
		"firstname":   req.Firstname,
		"lastname":    req.Lastname,
		"phonenumber": req.Phonenumber,
		"address":     req.Address,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			writeError(w, r, http.StatusBadRequest, field+" must be a non-empty string")
			return
		}
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = domain.PaymentCash
	}
	if payment != domain.PaymentCash && payment != domain.PaymentElectronic {
		writeError(w, r, http.StatusBadRequest, "payment_method must be cash or electronic")
		return
	}

	if len(req.Products) == 0 {
		writeError(w, r, http.StatusBadRequest, "products must be a non-empty list")
		return
	}

	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	known := make(map[int]struct{}, len(products))
	for _, p := range products {
		known[p.ProductID] = struct{}{}
	}

	items := make([]domain.OrderItem, 0, len(req.Products))
	for i, item := range req.Products {
		if item.Quantity <= 0 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("products[%d].quantity must be positive", i))
			return
		}
		if _, ok := known[item.Product]; !ok {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("products[%d].product %d does not exist", i, item.Product))
			return
		}
		items = append(items, domain.OrderItem{ProductID: item.Product, Quantity: item.Quantity})
	}

	order := &domain.Order{
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Phonenumber:   req.Phonenumber,
		Address:       req.Address,
		Comment:       req.Comment,
		PaymentMethod: payment,
		Status:        domain.OrderStatusNew,
		Items:         items,
	}

	orderID, err := h.Orders.CreateOrder(r.Context(), order)
	if err != nil {
		log.Printf("create order failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.RegisterOrderResponse{OrderID: orderID})
}
