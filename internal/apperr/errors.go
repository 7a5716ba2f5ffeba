package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict: an attempt that is no longer
// pending, or an order that is already bound to a rider (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidOrderState is returned when an order is not in a dispatchable status.
var ErrInvalidOrderState = errors.New("invalid order state")

// ErrInvalidCoordinates is returned when location data is missing or out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrCapacityExceeded is returned when a manual assignment target has no spare slots.
var ErrCapacityExceeded = errors.New("rider capacity exceeded")
