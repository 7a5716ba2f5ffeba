package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/domain"
)

// OrderRepo represents the orders repository.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetOrder - get an order by ID. Returns nil, nil when absent.
func (r *OrderRepo) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, status, restaurant_lat, restaurant_lng, dropoff_lat, dropoff_lng,
               rider_id, created_at, ready_at, assigned_at
        FROM orders
        WHERE id = $1
    `, orderID)

	var o domain.Order
	var status string
	if err := row.Scan(
		&o.ID, &status,
		&o.Restaurant.Lat, &o.Restaurant.Lng,
		&o.Dropoff.Lat, &o.Dropoff.Lng,
		&o.RiderID, &o.CreatedAt, &o.ReadyAt, &o.AssignedAt,
	); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", orderID, err)
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// BindRider atomically moves the order ready -> rider_assigned and bumps the
// rider's active-order count in the same transaction. The status predicate in
// the UPDATE is the race arbiter: whichever path runs it first wins, the
// loser sees zero rows and gets false.
func (r *OrderRepo) BindRider(ctx context.Context, orderID, riderID string, at time.Time) (bound bool, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	ct, err := tx.Exec(ctx, `
        UPDATE orders
        SET status = 'rider_assigned', rider_id = $2, assigned_at = $3
        WHERE id = $1 AND status = 'ready'
    `, orderID, riderID, at)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, fmt.Errorf("bind order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
        UPDATE riders
        SET active_orders = active_orders + 1, last_assigned_at = $2
        WHERE id = $1
    `, riderID, at); err != nil {
		_ = tx.Rollback(ctx)
		return false, fmt.Errorf("bump rider %q load: %w", riderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return true, nil
}

// UpsertOrder - insert or refresh an order snapshot. Used by the worker when
// order events carry full order payloads, and by tests.
func (r *OrderRepo) UpsertOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (id, status, restaurant_lat, restaurant_lng, dropoff_lat, dropoff_lng,
                            rider_id, created_at, ready_at, assigned_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE
        SET status = EXCLUDED.status,
            ready_at = EXCLUDED.ready_at
    `, o.ID, string(o.Status),
		o.Restaurant.Lat, o.Restaurant.Lng,
		o.Dropoff.Lat, o.Dropoff.Lng,
		o.RiderID, o.CreatedAt, o.ReadyAt, o.AssignedAt)
	if err != nil {
		return fmt.Errorf("upsert order %q: %w", o.ID, err)
	}
	return nil
}
