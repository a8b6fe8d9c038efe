package profilerepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
)

// PostgresRepository reads profiles from the travel_profiles table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get fetches one profile by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (profile.UserProfile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, temp_min_f, temp_max_f, flight_soft, flight_hard,
		       hotel_min, hotel_max, preferred_brands, trip_nights,
		       flexibility_days, comfort_priority
		FROM travel_profiles
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return profile.UserProfile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return profile.UserProfile{}, false, rows.Err()
	}
	p, err := scanProfile(rows)
	if err != nil {
		return profile.UserProfile{}, false, err
	}
	return p, true, rows.Err()
}

// List returns every stored identifier.
func (r *PostgresRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM travel_profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.UserProfile, error) {
	var p profile.UserProfile
	if err := row.Scan(
		&p.ID, &p.Name, &p.TempMinF, &p.TempMaxF,
		&p.FlightBudget.Soft, &p.FlightBudget.Hard,
		&p.HotelBudget.Min, &p.HotelBudget.Max,
		&p.PreferredBrands, &p.TripNights,
		&p.FlexibilityDays, &p.ComfortPriority,
	); err != nil {
		return profile.UserProfile{}, err
	}
	return p, nil
}

var _ profile.Repository = (*PostgresRepository)(nil)
