package ports

import (
	"context"
	"restaurant-match-service/internal/domain"
)

// Contract for converting a free-text address into coordinates via an
// external provider. Implementations fail closed: any transport failure,
// bad status, malformed body or empty candidate list is an error, and no
// retries happen at this layer.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
