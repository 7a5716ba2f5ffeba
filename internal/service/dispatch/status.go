package dispatch

// State is the externally visible state of a dispatch cycle.
type State string

// List of cycle states. Assigned and Exhausted are terminal; Exhausted
// means the operator must assign manually.
const (
	StateOffering  State = "offering"
	StateAssigned  State = "assigned"
	StateExhausted State = "exhausted"
	StateCanceled  State = "canceled"
)

// CycleStatus is a point-in-time snapshot of a dispatch cycle.
type CycleStatus struct {
	OrderID    string
	State      State
	AttemptID  string
	RiderID    string
	OffersMade int
}
