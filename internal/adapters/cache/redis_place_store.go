package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-match-service/internal/domain"
)

const placeKeyPrefix = "place:"

type redisPlaceEntry struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	UpdatedAt int64    `json:"updated_at"`
}

// RedisPlaceStore keeps the geocode cache in Redis so multiple service
// replicas share one set of entries. Entries never expire; the cache only
// grows with unique addresses.
type RedisPlaceStore struct {
	client *redis.Client
}

func NewRedisPlaceStore(client *redis.Client) (*RedisPlaceStore, error) {
	if client == nil {
		return nil, errors.New("redis place store: client is nil")
	}
	return &RedisPlaceStore{client: client}, nil
}

// GetOrCreate fetches the entry for address, creating an unresolved one via
// SETNX if none exists. SETNX never overwrites, so a resolved entry cannot
// regress to unresolved and concurrent creators collapse to one entry.
func (s *RedisPlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.PlaceEntry, error) {
	key := placeKeyPrefix + address

	blank, err := json.Marshal(redisPlaceEntry{UpdatedAt: time.Now().Unix()})
	if err != nil {
		return nil, fmt.Errorf("get or create place %q: marshal: %w", address, err)
	}

	if err := s.client.SetNX(ctx, key, blank, 0).Err(); err != nil {
		return nil, fmt.Errorf("get or create place %q: setnx: %w", address, err)
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("get or create place %q: get: %w", address, err)
	}

	var stored redisPlaceEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("get or create place %q: unmarshal: %w", address, err)
	}

	entry := &domain.PlaceEntry{Address: address, UpdatedAt: time.Unix(stored.UpdatedAt, 0)}
	if stored.Lat != nil && stored.Lon != nil {
		entry.Coordinates = &domain.Coordinates{Lat: *stored.Lat, Lon: *stored.Lon}
	}

	return entry, nil
}

// SetCoordinates records resolved coordinates for an existing entry.
func (s *RedisPlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	key := placeKeyPrefix + address

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("set place coordinates %q: exists: %w", address, err)
	}
	if exists == 0 {
		return fmt.Errorf("set place coordinates %q: no such entry", address)
	}

	payload, err := json.Marshal(redisPlaceEntry{
		Lat:       &coords.Lat,
		Lon:       &coords.Lon,
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("set place coordinates %q: marshal: %w", address, err)
	}

	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set place coordinates %q: set: %w", address, err)
	}

	return nil
}
