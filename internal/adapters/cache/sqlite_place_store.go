package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant-match-service/internal/domain"
)

// SQLite-backed geocode cache for local runs. Same contract as
// SQLPlaceStore; timestamps are stored as unix seconds.
type SqlitePlaceStore struct {
	DB *sql.DB
}

func NewSqlitePlaceStore(db *sql.DB) *SqlitePlaceStore {
	return &SqlitePlaceStore{DB: db}
}

// GetOrCreate fetches the entry for address, inserting an unresolved row
// first if needed. INSERT OR IGNORE relies on the primary key to keep one
// row per address under concurrent callers.
func (s *SqlitePlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.PlaceEntry, error) {
	if s.DB == nil {
		return nil, errors.New("place store: db is nil")
	}

	insert := `
	INSERT OR IGNORE INTO places (address, updated_at)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, insert, address, time.Now().Unix()); err != nil {
		return nil, fmt.Errorf("get or create place %q: insert: %w", address, err)
	}

	query := `
	SELECT lat, lon, updated_at
	FROM places
	WHERE address = ?;
	`
	var lat, lon sql.NullFloat64
	var updatedAt int64
	if err := s.DB.QueryRowContext(ctx, query, address).Scan(&lat, &lon, &updatedAt); err != nil {
		return nil, fmt.Errorf("get or create place %q: select: %w", address, err)
	}

	entry := &domain.PlaceEntry{Address: address, UpdatedAt: time.Unix(updatedAt, 0)}
	if lat.Valid && lon.Valid {
		entry.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return entry, nil
}

// SetCoordinates records resolved coordinates for an existing entry.
func (s *SqlitePlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("place store: db is nil")
	}

	update := `
	UPDATE places
	SET lat = ?,
		lon = ?,
		updated_at = ?
	WHERE address = ?;
	`
	res, err := s.DB.ExecContext(ctx, update, coords.Lat, coords.Lon, time.Now().Unix(), address)
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
