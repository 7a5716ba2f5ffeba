//go:generate mockgen -source=analytics.go -destination=analytics_mocks_test.go -package=analytics_test

package analytics

import (
	"context"
	"fmt"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// defaultWindow is used when the caller does not supply one.
const defaultWindow = 24 * time.Hour

// AttemptSource reads assignment attempts for a time window.
type AttemptSource interface {
	ListWindow(ctx context.Context, from, to time.Time) ([]domain.AssignmentAttempt, error)
}

// CycleSource reads dispatch cycles for a time window.
type CycleSource interface {
	ListWindow(ctx context.Context, from, to time.Time) ([]domain.DispatchCycle, error)
}

// Report aggregates assignment quality over a window. Rates are fractions in
// [0, 1]; a zero denominator yields a zero rate, never NaN.
type Report struct {
	From time.Time
	To   time.Time

	TotalAssignments  int
	ManualAssignments int
	OffersExtended    int
	ExhaustedCycles   int

	AvgTimeToAccept time.Duration
	RejectionRate   float64
	TimeoutRate     float64
	// FallbackRate is the share of assignments an operator had to make by hand.
	FallbackRate float64
}

// Service computes assignment analytics from the persisted audit trail.
type Service struct {
	attempts AttemptSource
	cycles   CycleSource
	logger   logx.Logger
	now      func() time.Time
}

// NewService creates a Service.
func NewService(attempts AttemptSource, cycles CycleSource, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		attempts: attempts,
		cycles:   cycles,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Report computes the analytics for the trailing window. Offer rates are
// computed over resolved automatic offers only; manual assignments count
// toward assignments and the fallback rate but never skew offer rates.
func (s *Service) Report(ctx context.Context, window time.Duration) (Report, error) {
	if window < 0 {
		return Report{}, apperr.ErrInvalid
	}
	if window == 0 {
		window = defaultWindow
	}

	to := s.now()
	from := to.Add(-window)

	attempts, err := s.attempts.ListWindow(ctx, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("list attempts: %w", err)
	}
	cycles, err := s.cycles.ListWindow(ctx, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("list cycles: %w", err)
	}

	r := Report{From: from, To: to}

	var (
		resolvedOffers int
		rejected       int
		timedOut       int
		acceptWaits    time.Duration
		acceptedOffers int
	)

	for _, a := range attempts {
		manual := a.OperatorID != ""

		if a.Outcome == domain.OutcomeAccepted {
			r.TotalAssignments++
			if manual {
				r.ManualAssignments++
			}
		}
		if manual {
			continue
		}

		r.OffersExtended++
		if !a.Outcome.Resolved() {
			continue
		}
		resolvedOffers++

		switch a.Outcome {
		case domain.OutcomeRejected:
			rejected++
		case domain.OutcomeTimedOut:
			timedOut++
		case domain.OutcomeAccepted:
			if a.RespondedAt != nil {
				acceptWaits += a.RespondedAt.Sub(a.OfferedAt)
				acceptedOffers++
			}
		}
	}

	for _, c := range cycles {
		if c.Outcome == domain.CycleExhausted {
			r.ExhaustedCycles++
		}
	}

	if resolvedOffers > 0 {
		r.RejectionRate = float64(rejected) / float64(resolvedOffers)
		r.TimeoutRate = float64(timedOut) / float64(resolvedOffers)
	}
	if acceptedOffers > 0 {
		r.AvgTimeToAccept = acceptWaits / time.Duration(acceptedOffers)
	}
	if r.TotalAssignments > 0 {
		r.FallbackRate = float64(r.ManualAssignments) / float64(r.TotalAssignments)
	}

	s.logger.Debug("analytics report computed",
		logx.Time("from", from),
		logx.Time("to", to),
		logx.Int("attempts", len(attempts)),
		logx.Int("cycles", len(cycles)))

	return r, nil
}
