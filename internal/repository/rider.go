package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/domain"
)

// RiderRepo represents the riders repository.
type RiderRepo struct {
	db *pgxpool.Pool
}

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *pgxpool.Pool) *RiderRepo {
	return &RiderRepo{db: db}
}

const riderColumns = `
    id, online, lat, lng, location_at, active_orders, capacity,
    acceptance_rate, completion_rate, rating, has_history, last_assigned_at
`

// EligiblePool returns the coarse candidate pool: online riders with spare
// capacity. Location freshness and radius are scored in memory against a
// single consistent snapshot, so they are not filtered here.
func (r *RiderRepo) EligiblePool(ctx context.Context, now time.Time) ([]domain.Rider, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+riderColumns+`
        FROM riders
        WHERE online = TRUE AND active_orders < capacity
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("eligible pool at %s: %w", now.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var pool []domain.Rider
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rider: %w", err)
		}
		pool = append(pool, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate riders: %w", err)
	}
	return pool, nil
}

// GetRider - get a rider by ID. Returns nil, nil when absent.
func (r *RiderRepo) GetRider(ctx context.Context, riderID string) (*domain.Rider, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+riderColumns+`
        FROM riders
        WHERE id = $1
    `, riderID)

	rd, err := scanRider(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider %q: %w", riderID, err)
	}
	return &rd, nil
}

// ReleaseByOrder frees one unit of capacity on the rider bound to the order.
// Idempotent: an order without a bound rider releases nothing.
func (r *RiderRepo) ReleaseByOrder(ctx context.Context, orderID string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE riders
        SET active_orders = GREATEST(active_orders - 1, 0)
        WHERE id = (SELECT rider_id FROM orders WHERE id = $1 AND rider_id IS NOT NULL)
    `, orderID)
	if err != nil {
		return fmt.Errorf("release rider for order %q: %w", orderID, err)
	}
	return nil
}

// UpsertRider - insert or refresh a rider profile. Used by location and
// status feeds, and by tests.
func (r *RiderRepo) UpsertRider(ctx context.Context, rd domain.Rider) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO riders (id, online, lat, lng, location_at, active_orders, capacity,
                            acceptance_rate, completion_rate, rating, has_history, last_assigned_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (id) DO UPDATE
        SET online = EXCLUDED.online,
            lat = EXCLUDED.lat,
            lng = EXCLUDED.lng,
            location_at = EXCLUDED.location_at,
            active_orders = EXCLUDED.active_orders,
            capacity = EXCLUDED.capacity,
            acceptance_rate = EXCLUDED.acceptance_rate,
            completion_rate = EXCLUDED.completion_rate,
            rating = EXCLUDED.rating,
            has_history = EXCLUDED.has_history,
            last_assigned_at = EXCLUDED.last_assigned_at
    `, rd.ID, rd.Online, rd.Location.Lat, rd.Location.Lng, rd.LocationAt,
		rd.ActiveOrders, rd.Capacity, rd.AcceptanceRate, rd.CompletionRate,
		rd.Rating, rd.HasHistory, rd.LastAssignedAt)
	if err != nil {
		return fmt.Errorf("upsert rider %q: %w", rd.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRider(row rowScanner) (domain.Rider, error) {
	var rd domain.Rider
	err := row.Scan(
		&rd.ID, &rd.Online,
		&rd.Location.Lat, &rd.Location.Lng, &rd.LocationAt,
		&rd.ActiveOrders, &rd.Capacity,
		&rd.AcceptanceRate, &rd.CompletionRate, &rd.Rating,
		&rd.HasHistory, &rd.LastAssignedAt,
	)
	return rd, err
}
