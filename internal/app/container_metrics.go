package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"rider-dispatch/internal/metrics"
	"rider-dispatch/internal/service/dispatch"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	Dispatch               dispatch.Counters
}

// provideMetrics registers the service counters with the default registry.
// An already-registered counter is reused, so rebuilding the container in
// one process does not fail.
func provideMetrics() (metricsOut, error) {
	rl, err := registerOrReuse("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerOrReuse("gateway_retries_total", metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}

	extended, err := registerOrReuse("dispatch_offers_extended_total", metrics.NewOffersExtendedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	accepted, err := registerOrReuse("dispatch_offers_accepted_total", metrics.NewOffersAcceptedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	rejected, err := registerOrReuse("dispatch_offers_rejected_total", metrics.NewOffersRejectedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	timedOut, err := registerOrReuse("dispatch_offers_timed_out_total", metrics.NewOffersTimedOutTotal())
	if err != nil {
		return metricsOut{}, err
	}
	exhausted, err := registerOrReuse("dispatch_cycles_exhausted_total", metrics.NewCyclesExhaustedTotal())
	if err != nil {
		return metricsOut{}, err
	}

	return metricsOut{
		RateLimitExceededTotal: rl,
		GatewayRetriesTotal:    gr,
		Dispatch: dispatch.Counters{
			OffersExtended:  extended,
			OffersAccepted:  accepted,
			OffersRejected:  rejected,
			OffersTimedOut:  timedOut,
			CyclesExhausted: exhausted,
		},
	}, nil
}

func registerOrReuse(name string, c prometheus.Counter) (prometheus.Counter, error) {
	err := prometheus.DefaultRegisterer.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("register %s: %w", name, err)
}
