//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"rider-dispatch/internal/domain"
)

// OrderStore is the order lifecycle collaborator. Dispatch reads orders and
// performs exactly one mutation: the ready → rider_assigned bind.
type OrderStore interface {
	// GetOrder returns nil, nil when the order does not exist.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	// BindRider atomically transitions the order ready → rider_assigned and
	// increments the rider's active-order count. Returns false when the
	// order is no longer ready (lost the race to another assignment path).
	BindRider(ctx context.Context, orderID, riderID string, at time.Time) (bool, error)
}

// RiderStore is the rider profile collaborator.
type RiderStore interface {
	// EligiblePool returns a snapshot of riders that are online, have spare
	// capacity and a fresh location. Fetched once per dispatch cycle so the
	// cycle works against a consistent view.
	EligiblePool(ctx context.Context, now time.Time) ([]domain.Rider, error)
	// GetRider returns nil, nil when the rider does not exist.
	GetRider(ctx context.Context, riderID string) (*domain.Rider, error)
}

// AttemptStore persists the append-only offer audit trail.
type AttemptStore interface {
	Insert(ctx context.Context, a domain.AssignmentAttempt) error
	// Resolve records the outcome of a pending attempt exactly once.
	Resolve(ctx context.Context, attemptID string, outcome domain.AttemptOutcome, at time.Time) error
}

// CycleStore persists dispatch cycle outcomes.
type CycleStore interface {
	Record(ctx context.Context, c domain.DispatchCycle) error
}

// Notifier extends an offer to a candidate rider. Fire-and-forget: a
// delivery failure is treated as a timeout for that candidate.
type Notifier interface {
	NotifyOffer(ctx context.Context, riderID string, offer domain.OfferPayload) error
}

// Scorer ranks a rider pool snapshot against an order.
type Scorer interface {
	Score(order domain.Order, pool []domain.Rider, now time.Time) ([]domain.CandidateScore, error)
}

// Counter counts events; prometheus counters satisfy it. Nil counters are allowed.
type Counter interface {
	Inc()
}

// Counters groups the dispatch metrics.
type Counters struct {
	OffersExtended  Counter
	OffersAccepted  Counter
	OffersRejected  Counter
	OffersTimedOut  Counter
	CyclesExhausted Counter
}

func inc(c Counter) {
	if c != nil {
		c.Inc()
	}
}
