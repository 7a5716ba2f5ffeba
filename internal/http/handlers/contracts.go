package handlers

import (
	"context"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/analytics"
	"rider-dispatch/internal/service/dispatch"
)

type dispatchUsecase interface {
	Dispatch(ctx context.Context, orderID string) (dispatch.CycleStatus, error)
	Respond(ctx context.Context, attemptID, riderID string, resp domain.OfferResponse) error
	ManualAssign(ctx context.Context, orderID, riderID, operatorID string) (domain.AssignResult, error)
}

// NewDispatchUsecase wires a Dispatcher into a dispatchUsecase.
func NewDispatchUsecase(d *dispatch.Dispatcher) dispatchUsecase {
	return d
}

type analyticsUsecase interface {
	Report(ctx context.Context, window time.Duration) (analytics.Report, error)
}

// NewAnalyticsUsecase wires an analytics Service into an analyticsUsecase.
func NewAnalyticsUsecase(svc *analytics.Service) analyticsUsecase {
	return svc
}
