package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/config"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/repository"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/orders"
	"rider-dispatch/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(d *dispatch.Dispatcher) orders.DispatchPort { return d },
		func(r *repository.RiderRepo) orders.RiderPort { return r },
		orders.NewProcessor,
		makeOrdersHandler,
		func(logger logx.Logger, cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

// makeOrdersHandler adapts the orders Processor to the kafka consumer.
// Validation failures can never succeed on redelivery, so they are marked
// permanent and the message is skipped.
func makeOrdersHandler(p *orders.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		err := p.Handle(ctx, event)
		if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrInvalidCoordinates) {
			return kafka.Permanent(err)
		}
		return err
	}
}
