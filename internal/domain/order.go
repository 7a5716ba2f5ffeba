package domain

import "time"

// OrderStatus represents the status of an order.
type OrderStatus string

// List of order statuses visible to dispatch
const (
	OrderReady         OrderStatus = "ready"
	OrderRiderAssigned OrderStatus = "rider_assigned"
	OrderPickedUp      OrderStatus = "picked_up"
	OrderOnTheWay      OrderStatus = "on_the_way"
	OrderDelivered     OrderStatus = "delivered"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderReady, OrderRiderAssigned, OrderPickedUp, OrderOnTheWay, OrderDelivered,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is the dispatch-relevant subset of an order. Dispatch only ever
// transitions status ready → rider_assigned.
type Order struct {
	ID         string
	Status     OrderStatus
	Restaurant LatLng
	Dropoff    LatLng
	RiderID    *string
	CreatedAt  time.Time
	ReadyAt    time.Time
	AssignedAt *time.Time
}

// Dispatchable reports whether the order may enter a dispatch cycle.
func (o Order) Dispatchable() bool {
	return o.Status == OrderReady
}
