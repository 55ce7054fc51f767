package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"restaurant-match-service/internal/domain"
)

func newTestRedisStore(t *testing.T) *RedisPlaceStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisPlaceStore(client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestRedisPlaceStoreGetOrCreate(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	entry, err := store.GetOrCreate(ctx, "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Coordinates != nil {
		t.Fatalf("new entry should be unresolved, got %v", entry.Coordinates)
	}
}

func TestRedisPlaceStoreSetCoordinates(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.GetOrCreate(ctx, "addr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords := domain.Coordinates{Lat: 55.7558, Lon: 37.6173}
	if err := store.SetCoordinates(ctx, "addr", coords); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := store.GetOrCreate(ctx, "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Coordinates == nil || *entry.Coordinates != coords {
		t.Fatalf("coordinates = %v, want %v", entry.Coordinates, coords)
	}
}

func TestRedisPlaceStoreGetOrCreateNeverClearsResolved(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.GetOrCreate(ctx, "addr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coords := domain.Coordinates{Lat: 1, Lon: 2}
	if err := store.SetCoordinates(ctx, "addr", coords); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later get-or-create (concurrent creator racing) must not regress
	// the entry back to unresolved.
	entry, err := store.GetOrCreate(ctx, "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Coordinates == nil || *entry.Coordinates != coords {
		t.Fatalf("resolved entry regressed: %v", entry.Coordinates)
	}
}

func TestRedisPlaceStoreSetCoordinatesMissingEntry(t *testing.T) {
	store := newTestRedisStore(t)

	err := store.SetCoordinates(context.Background(), "never created", domain.Coordinates{Lat: 1, Lon: 2})
	if err == nil {
		t.Fatal("expected error for missing entry")
	}
}
