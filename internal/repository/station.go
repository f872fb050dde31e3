package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/telfield/telfield/internal/domain"
)

// StationRepository handles database operations for the base-station
// registry.
type StationRepository struct {
	pool *pgxpool.Pool
}

// NewStationRepository creates a new StationRepository.
func NewStationRepository(pool *pgxpool.Pool) *StationRepository {
	return &StationRepository{pool: pool}
}

// FindByNumber looks up a registry entry by station number plus
// operator/region context.
func (r *StationRepository) FindByNumber(ctx context.Context, number, operator, region string) (*domain.Station, error) {
	query, args, err := psql.
		Select("id", "number", "operator", "region", "address", "latitude", "longitude", "updated_at").
		From("stations").
		Where(sq.Eq{"number": number, "operator": operator, "region": region}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindByNumber query: %w", err)
	}

	var station domain.Station
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&station.ID,
		&station.Number,
		&station.Operator,
		&station.Region,
		&station.Address,
		&station.Latitude,
		&station.Longitude,
		&station.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, fmt.Errorf("query station: %w", err)
	}

	return &station, nil
}

// Upsert inserts or refreshes a registry entry keyed by number plus
// operator/region.
func (r *StationRepository) Upsert(ctx context.Context, station *domain.Station) error {
	query, args, err := psql.
		Insert("stations").
		Columns("number", "operator", "region", "address", "latitude", "longitude").
		Values(station.Number, station.Operator, station.Region, station.Address, station.Latitude, station.Longitude).
		Suffix(`ON CONFLICT (number, operator, region) DO UPDATE SET
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Upsert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert station: %w", err)
	}

	return nil
}
