package dispatch

import (
	"context"
	"fmt"
	"strings"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// ManualAssign binds the order to the chosen rider on an operator's
// authority, bypassing scoring and the offer flow. Any running automatic
// cycle for the order is canceled first. The rider must exist and have
// spare capacity; the order must still be assignable.
func (d *Dispatcher) ManualAssign(ctx context.Context, orderID, riderID, operatorID string) (domain.AssignResult, error) {
	orderID = strings.TrimSpace(orderID)
	riderID = strings.TrimSpace(riderID)
	operatorID = strings.TrimSpace(operatorID)
	if orderID == "" || riderID == "" || operatorID == "" {
		return domain.AssignResult{}, apperr.ErrInvalid
	}

	// stop the automatic cycle so it does not keep offering while the
	// operator takes over
	if d.Cancel(orderID) {
		d.logger.Info("automatic cycle canceled by manual assignment",
			logx.String("order_id", orderID),
			logx.String("operator_id", operatorID))
	}

	order, err := d.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return domain.AssignResult{}, apperr.ErrNotFound
	}
	if order.Status == domain.OrderRiderAssigned {
		return domain.AssignResult{}, apperr.ErrConflict
	}
	if !order.Dispatchable() {
		return domain.AssignResult{}, apperr.ErrInvalidOrderState
	}

	rider, err := d.riders.GetRider(ctx, riderID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("get rider: %w", err)
	}
	if rider == nil {
		return domain.AssignResult{}, apperr.ErrNotFound
	}
	if !rider.SpareCapacity() {
		return domain.AssignResult{}, apperr.ErrCapacityExceeded
	}

	now := d.now()
	bound, err := d.orders.BindRider(ctx, orderID, riderID, now)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("bind rider: %w", err)
	}
	if !bound {
		// an in-flight accept won between the cancel and the bind
		return domain.AssignResult{}, apperr.ErrConflict
	}

	respondedAt := now
	if err := d.attempts.Insert(ctx, domain.AssignmentAttempt{
		ID:          d.newID(),
		OrderID:     orderID,
		RiderID:     riderID,
		OfferedAt:   now,
		Outcome:     domain.OutcomeAccepted,
		RespondedAt: &respondedAt,
		OperatorID:  operatorID,
	}); err != nil {
		// the bind already happened; the audit gap is logged, not rolled back
		d.logger.Error("manual assignment audit failed",
			logx.String("order_id", orderID),
			logx.String("rider_id", riderID),
			logx.Err(err))
	}

	d.logger.Info("manual assignment",
		logx.String("order_id", orderID),
		logx.String("rider_id", riderID),
		logx.String("operator_id", operatorID))

	return domain.AssignResult{
		OrderID:    orderID,
		RiderID:    riderID,
		AssignedAt: now,
		Manual:     true,
		OperatorID: operatorID,
	}, nil
}
