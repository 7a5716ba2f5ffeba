package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/gateway/notify"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/dispatch"
)

type notifierIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newNotifier(in notifierIn) dispatch.Notifier {
	gw := notify.NewHTTPGateway(in.Cfg.Notify.BaseURL, in.Cfg.Notify.Timeout)
	if gw == nil {
		in.Logger.Warn("notify gateway not configured, offers are logged only")
		return logNotifier{logger: in.Logger}
	}
	return notify.NewRetryingNotifier(gw, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts: in.Cfg.Notify.MaxAttempts,
		BaseDelay:   in.Cfg.Notify.BaseDelay,
		MaxDelay:    in.Cfg.Notify.MaxDelay,
	})
}

// logNotifier stands in for the push gateway in deployments without one.
// Riders still see offers through the polling API.
type logNotifier struct {
	logger logx.Logger
}

func (n logNotifier) NotifyOffer(_ context.Context, riderID string, offer domain.OfferPayload) error {
	n.logger.Info("offer extended (log only)",
		logx.String("rider_id", riderID),
		logx.String("attempt_id", offer.AttemptID),
		logx.String("order_id", offer.OrderID),
	)
	return nil
}
