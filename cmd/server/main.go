package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"restaurant-match-service/internal/adapters/cache"
	"restaurant-match-service/internal/adapters/geocode"
	"restaurant-match-service/internal/adapters/repositories"
	"restaurant-match-service/internal/api"
	"restaurant-match-service/internal/config"
	"restaurant-match-service/internal/platform/db"
	"restaurant-match-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres/Redis place stores, Yandex
// geocoder) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/catalog.json")
	port := config.Get("PORT", "8080")
	geocoderTimeout := config.GetDuration("GEOCODER_TIMEOUT", 10*time.Second)

	apiKey := config.Get("YANDEX_GEOCODER_API_KEY", "")
	geocoder, err := geocode.NewYandexGeocoder(apiKey, geocoderTimeout)
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	// The place store is the only shared mutable state between in-flight
	// rankings; pick the backend matching the deployment.
	var store ports.PlaceStore
	switch backend := config.Get("PLACES_BACKEND", "sqlite"); backend {
	case "sqlite":
		store = cache.NewSqlitePlaceStore(sqliteDB)
	case "postgres":
		pg, err := db.Open(config.Get("DATABASE_URL", ""))
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = cache.NewSQLPlaceStore(pg)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})
		defer client.Close()
		store, err = cache.NewRedisPlaceStore(client)
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal(fmt.Errorf("unknown PLACES_BACKEND %q", backend))
	}

	resolver, err := geocode.NewCachedGeocoder(store, geocoder)
	if err != nil {
		log.Fatal(err)
	}

	orders := repositories.NewSqliteOrderRepository(sqliteDB)
	catalog := repositories.NewSqliteCatalogRepository(sqliteDB)
	router := api.NewRouter(orders, catalog, resolver)

	// Timeouts are tuned for cold-cache order ranking (external geocoder latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
