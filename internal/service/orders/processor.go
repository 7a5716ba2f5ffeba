package orders

import (
	"context"
	"errors"

	"rider-dispatch/internal/apperr"
)

// Processor turns order lifecycle events into dispatcher calls. Events with
// statuses the dispatcher does not care about are ignored.
type Processor struct {
	dispatch DispatchPort
	riders   RiderPort
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(dispatchSvc DispatchPort, riders RiderPort) *Processor {
	p := &Processor{
		dispatch: dispatchSvc,
		riders:   riders,
	}
	p.factory = newActionFactory(p.onReady, p.onCanceled, p.onDelivered)
	return p
}

// Handle processes a single order event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onReady(ctx context.Context, e Event) error {
	_, err := p.dispatch.Dispatch(ctx, e.OrderID)
	// stale or replayed events: the order moved on, nothing to do
	if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrInvalidOrderState) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(_ context.Context, e Event) error {
	p.dispatch.Cancel(e.OrderID)
	return nil
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	err := p.riders.ReleaseByOrder(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
