package handlers

import "time"

type dispatchOrderRequest struct {
	OrderID string `json:"order_id"`
}

type dispatchOrderResponse struct {
	OrderID    string `json:"order_id"`
	State      string `json:"state"`
	AttemptID  string `json:"attempt_id,omitempty"`
	RiderID    string `json:"rider_id,omitempty"`
	OffersMade int    `json:"offers_made"`
}

type respondOfferRequest struct {
	AttemptID string `json:"attempt_id"`
	RiderID   string `json:"rider_id"`
	Response  string `json:"response"`
}

type respondOfferResponse struct {
	AttemptID string `json:"attempt_id"`
	Response  string `json:"response"`
}

type manualAssignRequest struct {
	OrderID    string `json:"order_id"`
	RiderID    string `json:"rider_id"`
	OperatorID string `json:"operator_id"`
}

type manualAssignResponse struct {
	OrderID    string    `json:"order_id"`
	RiderID    string    `json:"rider_id"`
	AssignedAt time.Time `json:"assigned_at"`
	Manual     bool      `json:"manual"`
	OperatorID string    `json:"operator_id"`
}

type analyticsResponse struct {
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	TotalAssignments     int       `json:"total_assignments"`
	ManualAssignments    int       `json:"manual_assignments"`
	OffersExtended       int       `json:"offers_extended"`
	ExhaustedCycles      int       `json:"exhausted_cycles"`
	AvgTimeToAcceptSecs  float64   `json:"avg_time_to_accept_seconds"`
	RejectionRate        float64   `json:"rejection_rate"`
	TimeoutRate          float64   `json:"timeout_rate"`
	FallbackRate         float64   `json:"fallback_rate"`
}
