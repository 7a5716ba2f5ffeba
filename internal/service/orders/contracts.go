//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"rider-dispatch/internal/service/dispatch"
)

// DispatchPort abstracts the subset of dispatcher operations needed by the
// orders Processor when handling order events.
type DispatchPort interface {
	Dispatch(ctx context.Context, orderID string) (dispatch.CycleStatus, error)
	Cancel(orderID string) bool
}

// RiderPort releases rider capacity when an order leaves the system.
type RiderPort interface {
	// ReleaseByOrder decrements the active-order count of the rider bound
	// to the order, if any.
	ReleaseByOrder(ctx context.Context, orderID string) error
}
