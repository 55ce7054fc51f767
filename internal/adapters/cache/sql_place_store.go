package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-match-service/internal/domain"
)

// SQLPlaceStore is a Postgres-backed geocode cache. One row per unique
// address; lat/lon stay NULL until the address resolves.
type SQLPlaceStore struct {
	DB *sql.DB
}

func NewSQLPlaceStore(db *sql.DB) *SQLPlaceStore {
	return &SQLPlaceStore{DB: db}
}

// GetOrCreate fetches the entry for address, inserting an unresolved row
// first if needed. ON CONFLICT DO NOTHING keeps concurrent creation of the
// same address down to a single row.
func (s *SQLPlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.PlaceEntry, error) {
	if s.DB == nil {
		return nil, errors.New("place store: db is nil")
	}

	insert := `
	INSERT INTO places (address, updated_at)
	VALUES ($1, now())
	ON CONFLICT (address) DO NOTHING;
	`
	if _, err := s.DB.ExecContext(ctx, insert, address); err != nil {
		return nil, fmt.Errorf("get or create place %q: insert: %w", address, err)
	}

	query := `
	SELECT lat, lon, updated_at
	FROM places
	WHERE address = $1;
	`
	var lat, lon sql.NullFloat64
	var updatedAt time.Time
	if err := s.DB.QueryRowContext(ctx, query, address).Scan(&lat, &lon, &updatedAt); err != nil {
		return nil, fmt.Errorf("get or create place %q: select: %w", address, err)
	}

	entry := &domain.PlaceEntry{Address: address, UpdatedAt: updatedAt}
	if lat.Valid && lon.Valid {
		entry.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return entry, nil
}

// SetCoordinates records resolved coordinates for an existing entry.
func (s *SQLPlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("place store: db is nil")
	}

	update := `
	UPDATE places
	SET lat = $2,
		lon = $3,
		updated_at = now()
	WHERE address = $1;
	`
	res, err := s.DB.ExecContext(ctx, update, address, coords.Lat, coords.Lon)
	if err != nil {
		return fmt.Errorf("set place coordinates %q: update: %w", address, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set place coordinates %q: rows affected: %w", address, err)
	}
	if affected == 0 {
		return fmt.Errorf("set place coordinates %q: no such entry", address)
	}

	return nil
}
