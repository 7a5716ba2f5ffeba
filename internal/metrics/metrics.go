package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewOffersExtendedTotal returns a Prometheus counter for offers extended to riders
func NewOffersExtendedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_offers_extended_total",
		Help: "Total number of offers extended to riders",
	})
}

// NewOffersAcceptedTotal returns a Prometheus counter for accepted offers
func NewOffersAcceptedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_offers_accepted_total",
		Help: "Total number of offers accepted by riders",
	})
}

// NewOffersRejectedTotal returns a Prometheus counter for rejected offers
func NewOffersRejectedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_offers_rejected_total",
		Help: "Total number of offers rejected by riders",
	})
}

// NewOffersTimedOutTotal returns a Prometheus counter for offers that expired unanswered
func NewOffersTimedOutTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_offers_timed_out_total",
		Help: "Total number of offers that expired unanswered",
	})
}

// NewCyclesExhaustedTotal returns a Prometheus counter for dispatch cycles that ran out of candidates
func NewCyclesExhaustedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_cycles_exhausted_total",
		Help: "Total number of dispatch cycles that ran out of candidates",
	})
}
