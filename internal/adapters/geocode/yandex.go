package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-match-service/internal/domain"
)

// ErrNoResults marks an address the provider could not locate (zero
// candidates). Callers treat it the same as any other geocoding failure.
var ErrNoResults = errors.New("geocoder returned no results")

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						// "longitude latitude", space-separated.
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// YandexGeocoder implements the Geocoder port against the Yandex geocoding
// HTTP API. One request per call, no retries: transient failures surface as
// a miss and self-heal on a later top-level request.
//
// Safe for concurrent use.
type YandexGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewYandexGeocoder(apiKey string, timeout time.Duration) (*YandexGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("yandex geocoder: api key is empty")
	}

	return &YandexGeocoder{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: "https://geocode-maps.yandex.ru/1.x/",
	}, nil
}

// Geocode resolves a free-text address to coordinates. Only the first
// candidate is used; the provider's disambiguation order is trusted as-is.
func (y *YandexGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: create request: %w", address, err)
	}

	q := req.URL.Query()
	q.Set("apikey", y.apiKey)
	q.Set("geocode", address)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := y.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: unexpected status: %d", address, resp.StatusCode)
	}

	var decoded yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ErrNoResults)
	}

	return parsePos(members[0].GeoObject.Point.Pos)
}

// parsePos converts the provider's "lon lat" point field into internal
// (lat, lon) order.
func parsePos(pos string) (domain.Coordinates, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid point format %q", pos)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", fields[0], err)
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", fields[1], err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
