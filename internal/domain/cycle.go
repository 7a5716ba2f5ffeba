package domain

import "time"

// CycleOutcome represents how a dispatch cycle ended.
type CycleOutcome string

// List of cycle outcomes
const (
	CycleAssigned  CycleOutcome = "assigned"
	CycleExhausted CycleOutcome = "exhausted"
	CycleCanceled  CycleOutcome = "canceled"
)

// DispatchCycle is a persisted record of one automatic dispatch run for an
// order. Exhausted rows form the operator queue for manual assignment.
type DispatchCycle struct {
	ID         string
	OrderID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    CycleOutcome
	OffersMade int
	RiderID    *string
}
