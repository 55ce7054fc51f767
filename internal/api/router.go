package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"restaurant-match-service/internal/api/handlers"
	"restaurant-match-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	orders ports.OrderRepository,
	catalog ports.CatalogRepository,
	resolver ports.CoordinateResolver,
) http.Handler {
	r := mux.NewRouter()

	orderHandler := &handlers.OrderHandler{
		Orders:   orders,
		Catalog:  catalog,
		Resolver: resolver,
	}
	catalogHandler := &handlers.CatalogHandler{Catalog: catalog}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/orders", orderHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/restaurants", catalogHandler.ListRestaurants).Methods(http.MethodGet)
	r.HandleFunc("/products", catalogHandler.ProductMatrix).Methods(http.MethodGet)

	return loggingMiddleware(r)
}
