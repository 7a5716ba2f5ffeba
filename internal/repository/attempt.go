package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/domain"
)

// AttemptRepo represents the assignment attempts repository. The table is
// append-only: each attempt gets exactly one row and exactly one outcome.
type AttemptRepo struct {
	db *pgxpool.Pool
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(db *pgxpool.Pool) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Insert - insert a new assignment attempt.
func (r *AttemptRepo) Insert(ctx context.Context, a domain.AssignmentAttempt) error {
	var operatorID *string
	if a.OperatorID != "" {
		operatorID = &a.OperatorID
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO assignment_attempts (id, order_id, rider_id, offered_at, outcome, responded_at, operator_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, a.ID, a.OrderID, a.RiderID, a.OfferedAt, string(a.Outcome), a.RespondedAt, operatorID)
	if err != nil {
		return fmt.Errorf("insert attempt %q: %w", a.ID, err)
	}
	return nil
}

// Resolve writes the attempt outcome. The outcome predicate makes the write
// idempotent: a second resolution of the same attempt affects zero rows.
func (r *AttemptRepo) Resolve(ctx context.Context, attemptID string, outcome domain.AttemptOutcome, at time.Time) error {
	_, err := r.db.Exec(ctx, `
        UPDATE assignment_attempts
        SET outcome = $2, responded_at = $3
        WHERE id = $1 AND outcome = 'pending'
    `, attemptID, string(outcome), at)
	if err != nil {
		return fmt.Errorf("resolve attempt %q: %w", attemptID, err)
	}
	return nil
}

// ListWindow returns attempts offered within [from, to), oldest first.
func (r *AttemptRepo) ListWindow(ctx context.Context, from, to time.Time) ([]domain.AssignmentAttempt, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, rider_id, offered_at, outcome, responded_at, operator_id
        FROM assignment_attempts
        WHERE offered_at >= $1 AND offered_at < $2
        ORDER BY offered_at
    `, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []domain.AssignmentAttempt
	for rows.Next() {
		var a domain.AssignmentAttempt
		var outcome string
		var operatorID *string
		if err := rows.Scan(&a.ID, &a.OrderID, &a.RiderID, &a.OfferedAt, &outcome, &a.RespondedAt, &operatorID); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Outcome = domain.AttemptOutcome(outcome)
		if operatorID != nil {
			a.OperatorID = *operatorID
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
