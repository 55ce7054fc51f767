package geocode

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-match-service/internal/domain"
)

type memPlaceStore struct {
	mu       sync.Mutex
	entries  map[string]*domain.PlaceEntry
	writeErr error
}

func newMemPlaceStore() *memPlaceStore {
	return &memPlaceStore{entries: map[string]*domain.PlaceEntry{}}
}

func (m *memPlaceStore) GetOrCreate(_ context.Context, address string) (*domain.PlaceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.entries[address]; ok {
		copied := *entry
		return &copied, nil
	}
	entry := &domain.PlaceEntry{Address: address, UpdatedAt: time.Now()}
	m.entries[address] = entry
	copied := *entry
	return &copied, nil
}

func (m *memPlaceStore) SetCoordinates(_ context.Context, address string, coords domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	entry, ok := m.entries[address]
	if !ok {
		return errors.New("no such entry")
	}
	entry.Coordinates = &coords
	entry.UpdatedAt = time.Now()
	return nil
}

type countingGeocoder struct {
	mu     sync.Mutex
	coords map[string]domain.Coordinates
	calls  int
}

func (g *countingGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	c, ok := g.coords[address]
	if !ok {
		return domain.Coordinates{}, ErrNoResults
	}
	return c, nil
}

func TestCachedGeocoderHitSkipsProvider(t *testing.T) {
	store := newMemPlaceStore()
	provider := &countingGeocoder{coords: map[string]domain.Coordinates{
		"Moscow, Tverskaya 7": {Lat: 55.7642, Lon: 37.6056},
	}}
	resolver, err := NewCachedGeocoder(store, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, ok, err := resolver.Resolve(context.Background(), "Moscow, Tverskaya 7")
	if err != nil || !ok {
		t.Fatalf("first resolve: ok=%v err=%v", ok, err)
	}

	second, ok, err := resolver.Resolve(context.Background(), "Moscow, Tverskaya 7")
	if err != nil || !ok {
		t.Fatalf("second resolve: ok=%v err=%v", ok, err)
	}

	if first != second {
		t.Fatalf("resolves disagree: %v vs %v", first, second)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
}

func TestCachedGeocoderMissIsRetriedNextCall(t *testing.T) {
	store := newMemPlaceStore()
	provider := &countingGeocoder{coords: map[string]domain.Coordinates{}}
	resolver, _ := NewCachedGeocoder(store, provider)

	// Two consecutive failures: no negative caching, so both calls hit
	// the provider.
	for i := 1; i <= 2; i++ {
		_, ok, err := resolver.Resolve(context.Background(), "unknown addr")
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if ok {
			t.Fatalf("call %d: expected miss", i)
		}
		if provider.calls != i {
			t.Fatalf("call %d: provider calls = %d, want %d", i, provider.calls, i)
		}
	}

	// The address resolves later: third call succeeds and persists.
	provider.mu.Lock()
	provider.coords["unknown addr"] = domain.Coordinates{Lat: 1, Lon: 2}
	provider.mu.Unlock()

	coords, ok, err := resolver.Resolve(context.Background(), "unknown addr")
	if err != nil || !ok {
		t.Fatalf("third resolve: ok=%v err=%v", ok, err)
	}
	if coords != (domain.Coordinates{Lat: 1, Lon: 2}) {
		t.Fatalf("coords = %v", coords)
	}

	// And the fourth is a cache hit.
	if _, _, err := resolver.Resolve(context.Background(), "unknown addr"); err != nil {
		t.Fatalf("fourth resolve: %v", err)
	}
	if provider.calls != 3 {
		t.Fatalf("provider calls = %d, want 3", provider.calls)
	}
}

func TestCachedGeocoderReturnsCoordsOnWriteFailure(t *testing.T) {
	store := newMemPlaceStore()
	store.writeErr = errors.New("disk full")
	provider := &countingGeocoder{coords: map[string]domain.Coordinates{
		"addr": {Lat: 3, Lon: 4},
	}}
	resolver, _ := NewCachedGeocoder(store, provider)

	coords, ok, err := resolver.Resolve(context.Background(), "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || coords != (domain.Coordinates{Lat: 3, Lon: 4}) {
		t.Fatalf("ok=%v coords=%v", ok, coords)
	}
}

func TestCachedGeocoderSharedAcrossCallers(t *testing.T) {
	// Same restaurant address requested for two different orders: exactly
	// one provider call total.
	store := newMemPlaceStore()
	provider := &countingGeocoder{coords: map[string]domain.Coordinates{
		"restaurant addr": {Lat: 5, Lon: 6},
	}}
	resolver, _ := NewCachedGeocoder(store, provider)

	for order := 0; order < 2; order++ {
		_, ok, err := resolver.Resolve(context.Background(), "restaurant addr")
		if err != nil || !ok {
			t.Fatalf("order %d: ok=%v err=%v", order, ok, err)
		}
	}

	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
}

func TestNewCachedGeocoderValidatesDeps(t *testing.T) {
	if _, err := NewCachedGeocoder(nil, &countingGeocoder{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewCachedGeocoder(newMemPlaceStore(), nil); err == nil {
		t.Fatal("expected error for nil geocoder")
	}
}
