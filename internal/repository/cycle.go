package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/domain"
)

// CycleRepo represents the dispatch cycles repository.
type CycleRepo struct {
	db *pgxpool.Pool
}

// NewCycleRepo creates a new CycleRepo.
func NewCycleRepo(db *pgxpool.Pool) *CycleRepo {
	return &CycleRepo{db: db}
}

// Record - insert a finished dispatch cycle.
func (r *CycleRepo) Record(ctx context.Context, c domain.DispatchCycle) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO dispatch_cycles (id, order_id, started_at, finished_at, outcome, offers_made, rider_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, c.ID, c.OrderID, c.StartedAt, c.FinishedAt, string(c.Outcome), c.OffersMade, c.RiderID)
	if err != nil {
		return fmt.Errorf("record cycle %q: %w", c.ID, err)
	}
	return nil
}

// ListWindow returns cycles finished within [from, to), oldest first.
func (r *CycleRepo) ListWindow(ctx context.Context, from, to time.Time) ([]domain.DispatchCycle, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, started_at, finished_at, outcome, offers_made, rider_id
        FROM dispatch_cycles
        WHERE finished_at >= $1 AND finished_at < $2
        ORDER BY finished_at
    `, from, to)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	var out []domain.DispatchCycle
	for rows.Next() {
		var c domain.DispatchCycle
		var outcome string
		if err := rows.Scan(&c.ID, &c.OrderID, &c.StartedAt, &c.FinishedAt, &outcome, &c.OffersMade, &c.RiderID); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		c.Outcome = domain.CycleOutcome(outcome)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycles: %w", err)
	}
	return out, nil
}
