package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// Config stores dispatch cycle knobs.
type Config struct {
	OfferTimeout   time.Duration
	MaxQueueLength int
	BaseFare       float64
	PerKmFare      float64
}

// Dispatcher runs offer cycles: one goroutine per order working through an
// ordered candidate queue, offering serially and waiting for a response or
// a timeout. It is safe for concurrent use.
type Dispatcher struct {
	orders   OrderStore
	riders   RiderStore
	attempts AttemptStore
	cycles   CycleStore
	notifier Notifier
	scorer   Scorer
	cfg      Config
	logger   logx.Logger
	counters Counters

	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	active    map[string]*cycle // keyed by order id
	byAttempt map[string]*cycle // keyed by pending attempt id
	wg        sync.WaitGroup
	closed    bool
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(
	orders OrderStore,
	riders RiderStore,
	attempts AttemptStore,
	cycles CycleStore,
	notifier Notifier,
	scorer Scorer,
	cfg Config,
	logger logx.Logger,
	counters Counters,
) *Dispatcher {
	if cfg.OfferTimeout <= 0 {
		cfg.OfferTimeout = 30 * time.Second
	}
	if cfg.MaxQueueLength <= 0 {
		cfg.MaxQueueLength = 10
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Dispatcher{
		orders:    orders,
		riders:    riders,
		attempts:  attempts,
		cycles:    cycles,
		notifier:  notifier,
		scorer:    scorer,
		cfg:       cfg,
		logger:    logger,
		counters:  counters,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		active:    make(map[string]*cycle),
		byAttempt: make(map[string]*cycle),
	}
}

// Dispatch starts an offer cycle for the order. Idempotent: if a cycle for
// the order is already running, its current status is returned and no second
// cycle is started. When no eligible candidates exist the call records an
// exhausted cycle and returns StateExhausted; that is an expected outcome,
// not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, orderID string) (CycleStatus, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return CycleStatus{}, apperr.ErrInvalid
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return CycleStatus{}, apperr.ErrConflict
	}
	if c, ok := d.active[orderID]; ok {
		st := c.snapshot()
		d.mu.Unlock()
		return st, nil
	}
	d.mu.Unlock()

	order, err := d.orders.GetOrder(ctx, orderID)
	if err != nil {
		return CycleStatus{}, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return CycleStatus{}, apperr.ErrNotFound
	}
	if order.Status == domain.OrderRiderAssigned {
		return CycleStatus{}, apperr.ErrConflict
	}
	if !order.Dispatchable() {
		return CycleStatus{}, apperr.ErrInvalidOrderState
	}

	now := d.now()
	pool, err := d.riders.EligiblePool(ctx, now)
	if err != nil {
		return CycleStatus{}, fmt.Errorf("eligible pool: %w", err)
	}

	scores, err := d.scorer.Score(*order, pool, now)
	if err != nil {
		return CycleStatus{}, err
	}

	queue := BuildOfferQueue(scores, nil, d.cfg.MaxQueueLength)
	if len(queue) == 0 {
		d.recordCycle(ctx, domain.DispatchCycle{
			ID:         d.newID(),
			OrderID:    orderID,
			StartedAt:  now,
			FinishedAt: now,
			Outcome:    domain.CycleExhausted,
		})
		inc(d.counters.CyclesExhausted)
		d.logger.Warn("no eligible candidates, manual assignment required",
			logx.String("order_id", orderID))
		return CycleStatus{OrderID: orderID, State: StateExhausted}, nil
	}

	c := newCycle(orderID, queue, now)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return CycleStatus{}, apperr.ErrConflict
	}
	if existing, ok := d.active[orderID]; ok {
		// lost the race to a concurrent Dispatch for the same order
		st := existing.snapshot()
		d.mu.Unlock()
		return st, nil
	}
	d.active[orderID] = c
	d.wg.Add(1)
	d.mu.Unlock()

	// the cycle outlives the request that started it
	go d.runCycle(context.WithoutCancel(ctx), c, *order)

	d.logger.Info("dispatch cycle started",
		logx.String("order_id", orderID),
		logx.Int("queue_len", len(queue)))

	return c.snapshot(), nil
}

// Respond delivers a rider's answer to a pending offer. Exactly one response
// per attempt wins; duplicates, answers to resolved attempts and answers from
// the wrong rider all return apperr.ErrConflict.
func (d *Dispatcher) Respond(ctx context.Context, attemptID, riderID string, resp domain.OfferResponse) error {
	attemptID = strings.TrimSpace(attemptID)
	riderID = strings.TrimSpace(riderID)
	if attemptID == "" || riderID == "" || !resp.Valid() {
		return apperr.ErrInvalid
	}

	d.mu.Lock()
	c := d.byAttempt[attemptID]
	d.mu.Unlock()
	if c == nil {
		// already resolved, superseded or never existed
		return apperr.ErrConflict
	}
	return c.deliver(attemptID, riderID, resp)
}

// Cancel stops the running cycle for the order, if any. The pending offer is
// marked superseded. Returns false when no cycle is running.
func (d *Dispatcher) Cancel(orderID string) bool {
	d.mu.Lock()
	c := d.active[orderID]
	d.mu.Unlock()
	if c == nil {
		return false
	}
	c.cancel()
	return true
}

// Status reports the cycle snapshot for the order. Returns false when no
// cycle is running.
func (d *Dispatcher) Status(orderID string) (CycleStatus, bool) {
	d.mu.Lock()
	c := d.active[orderID]
	d.mu.Unlock()
	if c == nil {
		return CycleStatus{}, false
	}
	return c.snapshot(), true
}

// Shutdown cancels all running cycles and waits for them to drain, or until
// the context expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	running := make([]*cycle, 0, len(d.active))
	for _, c := range d.active {
		running = append(running, c)
	}
	d.mu.Unlock()

	for _, c := range running {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) recordCycle(ctx context.Context, c domain.DispatchCycle) {
	if err := d.cycles.Record(ctx, c); err != nil {
		d.logger.Error("record dispatch cycle failed",
			logx.String("order_id", c.OrderID), logx.Err(err))
	}
}

func (d *Dispatcher) offerPayload(attemptID string, order domain.Order, now time.Time) domain.OfferPayload {
	tripKm := domain.HaversineKm(order.Restaurant, order.Dropoff)
	return domain.OfferPayload{
		AttemptID:         attemptID,
		OrderID:           order.ID,
		Pickup:            order.Restaurant,
		Dropoff:           order.Dropoff,
		EstimatedEarnings: d.cfg.BaseFare + d.cfg.PerKmFare*tripKm,
		ExpiresAt:         now.Add(d.cfg.OfferTimeout),
	}
}
