package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

type notifier interface {
	NotifyOffer(context.Context, string, domain.OfferPayload) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingNotifier behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingNotifier retries transient notification failures with exponential
// backoff. Permanent failures (4xx) are returned immediately.
type RetryingNotifier struct {
	next    notifier
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingNotifier wraps next with retries. Returns nil when next is nil
// so an absent gateway stays absent.
func NewRetryingNotifier(next notifier, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingNotifier {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingNotifier{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// NotifyOffer delivers the offer, retrying transient failures.
func (n *RetryingNotifier) NotifyOffer(ctx context.Context, riderID string, offer domain.OfferPayload) error {
	var lastErr error
	for attempt := 1; attempt <= n.cfg.MaxAttempts; attempt++ {
		err := n.next.NotifyOffer(ctx, riderID, offer)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == n.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(n.cfg.BaseDelay, n.cfg.MaxDelay, attempt)
		if n.retries != nil {
			n.retries.Inc()
		}
		n.logger.Warn("notify gateway retry",
			logx.String("rider_id", riderID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, n.sleep, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable reports whether another attempt can help. Network failures and
// server-side errors are retryable; client errors are not.
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError || se.Code == http.StatusTooManyRequests
	}
	// transport-level failure: timeout, refused connection, reset
	return true
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
