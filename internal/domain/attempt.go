package domain

import "time"

// AttemptOutcome represents the resolution of one offer-and-response cycle.
type AttemptOutcome string

// List of attempt outcomes. Pending means no outcome has been recorded yet.
const (
	OutcomePending    AttemptOutcome = "pending"
	OutcomeAccepted   AttemptOutcome = "accepted"
	OutcomeRejected   AttemptOutcome = "rejected"
	OutcomeTimedOut   AttemptOutcome = "timed_out"
	OutcomeSuperseded AttemptOutcome = "superseded"
)

// Resolved reports whether the outcome is terminal.
func (o AttemptOutcome) Resolved() bool {
	return o != OutcomePending && o != ""
}

// AssignmentAttempt is a persisted record of one offer extended to a rider.
// Append-only: the outcome is written exactly once.
type AssignmentAttempt struct {
	ID          string
	OrderID     string
	RiderID     string
	OfferedAt   time.Time
	Outcome     AttemptOutcome
	RespondedAt *time.Time
	// OperatorID is set only for manual assignments, for audit.
	OperatorID string
}

// OfferResponse is a rider's answer to an extended offer.
type OfferResponse string

// List of offer responses
const (
	ResponseAccept OfferResponse = "accept"
	ResponseReject OfferResponse = "reject"
)

// Valid checks if the OfferResponse is valid
func (r OfferResponse) Valid() bool {
	return r == ResponseAccept || r == ResponseReject
}

// OfferPayload is the "offer extended" event sent to a candidate rider.
// Delivery mechanics are out of scope; this is only the contract.
type OfferPayload struct {
	AttemptID         string
	OrderID           string
	Pickup            LatLng
	Dropoff           LatLng
	EstimatedEarnings float64
	ExpiresAt         time.Time
}

// AssignResult - struct representing the result of binding an order to a rider.
type AssignResult struct {
	OrderID    string
	RiderID    string
	AssignedAt time.Time
	Manual     bool
	OperatorID string
}
