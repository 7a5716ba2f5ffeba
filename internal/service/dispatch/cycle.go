package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// attempt states. A pending attempt moves exactly once, either to responded
// (a rider answer won the race) or to closed (timeout or cancellation won).
const (
	attemptPending int32 = iota
	attemptResponded
	attemptClosed
)

// attempt is one pending offer. The atomic state is the arbiter between a
// late response and the timeout firing at the same instant.
type attempt struct {
	id      string
	riderID string
	state   atomic.Int32
	respCh  chan domain.OfferResponse // buffered 1, written by the CAS winner only
}

// cycle is the in-memory state of one running dispatch cycle.
type cycle struct {
	orderID   string
	queue     []domain.CandidateScore
	startedAt time.Time

	cancelOnce sync.Once
	cancelCh   chan struct{}

	mu         sync.Mutex
	state      State
	offersMade int
	cur        *attempt
	assignedTo string
}

func newCycle(orderID string, queue []domain.CandidateScore, startedAt time.Time) *cycle {
	return &cycle{
		orderID:   orderID,
		queue:     queue,
		startedAt: startedAt,
		cancelCh:  make(chan struct{}),
		state:     StateOffering,
	}
}

func (c *cycle) cancel() {
	c.cancelOnce.Do(func() { close(c.cancelCh) })
}

func (c *cycle) snapshot() CycleStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := CycleStatus{
		OrderID:    c.orderID,
		State:      c.state,
		RiderID:    c.assignedTo,
		OffersMade: c.offersMade,
	}
	if c.cur != nil {
		st.AttemptID = c.cur.id
		st.RiderID = c.cur.riderID
	}
	return st
}

func (c *cycle) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// deliver routes a response to the pending attempt. The CompareAndSwap makes
// the first response the only one to reach the cycle goroutine.
func (c *cycle) deliver(attemptID, riderID string, resp domain.OfferResponse) error {
	c.mu.Lock()
	att := c.cur
	c.mu.Unlock()

	if att == nil || att.id != attemptID {
		return apperr.ErrConflict
	}
	if att.riderID != riderID {
		return apperr.ErrConflict
	}
	if !att.state.CompareAndSwap(attemptPending, attemptResponded) {
		return apperr.ErrConflict
	}
	att.respCh <- resp
	return nil
}

// runCycle works through the offer queue serially until a rider accepts, the
// queue drains, or the cycle is canceled. It owns all writes to the cycle
// state and records the outcome on exit.
func (d *Dispatcher) runCycle(ctx context.Context, c *cycle, order domain.Order) {
	defer d.wg.Done()

	outcome := domain.CycleExhausted
	var assignedTo *string

	defer func() {
		d.mu.Lock()
		delete(d.active, c.orderID)
		d.mu.Unlock()

		d.recordCycle(ctx, domain.DispatchCycle{
			ID:         d.newID(),
			OrderID:    c.orderID,
			StartedAt:  c.startedAt,
			FinishedAt: d.now(),
			Outcome:    outcome,
			OffersMade: c.snapshot().OffersMade,
			RiderID:    assignedTo,
		})
	}()

	for _, cand := range c.queue {
		select {
		case <-c.cancelCh:
			c.setState(StateCanceled)
			outcome = domain.CycleCanceled
			return
		default:
		}

		att := &attempt{
			id:      d.newID(),
			riderID: cand.RiderID,
			respCh:  make(chan domain.OfferResponse, 1),
		}

		now := d.now()
		if err := d.attempts.Insert(ctx, domain.AssignmentAttempt{
			ID:        att.id,
			OrderID:   c.orderID,
			RiderID:   cand.RiderID,
			OfferedAt: now,
			Outcome:   domain.OutcomePending,
		}); err != nil {
			// audit write failure must not stall the cycle
			d.logger.Error("attempt insert failed",
				logx.String("order_id", c.orderID),
				logx.String("rider_id", cand.RiderID),
				logx.Err(err))
		}

		c.mu.Lock()
		c.cur = att
		c.offersMade++
		c.mu.Unlock()

		d.mu.Lock()
		d.byAttempt[att.id] = c
		d.mu.Unlock()

		if err := d.notifier.NotifyOffer(ctx, cand.RiderID, d.offerPayload(att.id, order, now)); err != nil {
			// fail open: an unreachable rider is equivalent to one that
			// never answered
			d.logger.Warn("offer notification failed",
				logx.String("order_id", c.orderID),
				logx.String("rider_id", cand.RiderID),
				logx.Err(err))
			att.state.Store(attemptClosed)
			d.finishAttempt(ctx, c, att, domain.OutcomeTimedOut)
			inc(d.counters.OffersTimedOut)
			continue
		}
		inc(d.counters.OffersExtended)
		d.logger.Info("offer extended",
			logx.String("order_id", c.orderID),
			logx.String("rider_id", cand.RiderID),
			logx.String("attempt_id", att.id),
			logx.Float64("score", cand.Score),
			logx.Float64("distance_km", cand.DistanceKm))

		timer := time.NewTimer(d.cfg.OfferTimeout)
		var resp domain.OfferResponse

		select {
		case <-c.cancelCh:
			timer.Stop()
			if !att.state.CompareAndSwap(attemptPending, attemptClosed) {
				// a response squeaked in; the cycle is going away regardless
				<-att.respCh
			}
			d.finishAttempt(ctx, c, att, domain.OutcomeSuperseded)
			c.setState(StateCanceled)
			outcome = domain.CycleCanceled
			d.logger.Info("dispatch cycle canceled", logx.String("order_id", c.orderID))
			return

		case resp = <-att.respCh:
			timer.Stop()

		case <-timer.C:
			if att.state.CompareAndSwap(attemptPending, attemptClosed) {
				d.finishAttempt(ctx, c, att, domain.OutcomeTimedOut)
				inc(d.counters.OffersTimedOut)
				d.logger.Info("offer timed out",
					logx.String("order_id", c.orderID),
					logx.String("rider_id", cand.RiderID))
				continue
			}
			// the rider responded at the instant the timer fired
			resp = <-att.respCh
		}

		if resp == domain.ResponseReject {
			d.finishAttempt(ctx, c, att, domain.OutcomeRejected)
			inc(d.counters.OffersRejected)
			d.logger.Info("offer rejected",
				logx.String("order_id", c.orderID),
				logx.String("rider_id", cand.RiderID))
			continue
		}

		// accept: the storage-level status check guards against the manual
		// assignment path binding the order first
		bound, err := d.orders.BindRider(ctx, c.orderID, att.riderID, d.now())
		if err != nil {
			d.logger.Error("rider bind failed",
				logx.String("order_id", c.orderID),
				logx.String("rider_id", att.riderID),
				logx.Err(err))
			d.finishAttempt(ctx, c, att, domain.OutcomeSuperseded)
			c.setState(StateCanceled)
			outcome = domain.CycleCanceled
			return
		}
		if !bound {
			d.logger.Info("order no longer available, accept superseded",
				logx.String("order_id", c.orderID),
				logx.String("rider_id", att.riderID))
			d.finishAttempt(ctx, c, att, domain.OutcomeSuperseded)
			c.setState(StateCanceled)
			outcome = domain.CycleCanceled
			return
		}

		d.finishAttempt(ctx, c, att, domain.OutcomeAccepted)
		inc(d.counters.OffersAccepted)

		c.mu.Lock()
		c.state = StateAssigned
		c.assignedTo = att.riderID
		c.mu.Unlock()

		rid := att.riderID
		assignedTo = &rid
		outcome = domain.CycleAssigned
		d.logger.Info("rider assigned",
			logx.String("order_id", c.orderID),
			logx.String("rider_id", att.riderID))
		return
	}

	c.setState(StateExhausted)
	inc(d.counters.CyclesExhausted)
	d.logger.Warn("dispatch cycle exhausted, manual assignment required",
		logx.String("order_id", c.orderID),
		logx.Int("offers_made", c.snapshot().OffersMade))
}

// finishAttempt unregisters the attempt and persists its outcome.
func (d *Dispatcher) finishAttempt(ctx context.Context, c *cycle, att *attempt, outcome domain.AttemptOutcome) {
	d.mu.Lock()
	delete(d.byAttempt, att.id)
	d.mu.Unlock()

	c.mu.Lock()
	if c.cur == att {
		c.cur = nil
	}
	c.mu.Unlock()

	if err := d.attempts.Resolve(ctx, att.id, outcome, d.now()); err != nil {
		d.logger.Error("attempt resolve failed",
			logx.String("attempt_id", att.id),
			logx.String("outcome", string(outcome)),
			logx.Err(err))
	}
}
