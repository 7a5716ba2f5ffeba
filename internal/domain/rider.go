package domain

import "time"

// Rider is the dispatch-relevant subset of a rider profile. The profile
// itself is owned by an external store; dispatch only reads it and adjusts
// the active-order count on bind and on delivery.
type Rider struct {
	ID             string
	Online         bool
	Location       LatLng
	LocationAt     time.Time
	ActiveOrders   int
	Capacity       int
	AcceptanceRate float64
	CompletionRate float64
	Rating         float64
	HasHistory     bool
	LastAssignedAt time.Time
}

// SpareCapacity reports whether the rider can take another order.
func (r Rider) SpareCapacity() bool {
	return r.Capacity >= 1 && r.ActiveOrders < r.Capacity
}

// LocationFresh reports whether the rider's last known location is recent
// enough to be trusted for dispatch.
func (r Rider) LocationFresh(now time.Time, maxAge time.Duration) bool {
	if r.LocationAt.IsZero() {
		return false
	}
	return now.Sub(r.LocationAt) <= maxAge
}
