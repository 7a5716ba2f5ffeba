package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/repository"
	"rider-dispatch/internal/service/analytics"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/scoring"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
	worker    bool
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// ForWorker registers the kafka consumer stack instead of the HTTP one.
func (b *ContainerBuilder) ForWorker() *ContainerBuilder {
	b.worker = true
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if b.worker {
		if err := registerWorker(container); err != nil {
			return nil, fmt.Errorf("worker: %w", err)
		}
		return container, nil
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container for the HTTP service
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns a new dig container for the worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().ForWorker().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		provideMetrics,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewRiderRepo,
		repository.NewAttemptRepo,
		repository.NewCycleRepo,

		func(r *repository.OrderRepo) dispatch.OrderStore { return r },
		func(r *repository.RiderRepo) dispatch.RiderStore { return r },
		func(r *repository.AttemptRepo) dispatch.AttemptStore { return r },
		func(r *repository.CycleRepo) dispatch.CycleStore { return r },

		func(cfg *config.Config) *scoring.Scorer {
			return scoring.NewScorer(scoring.Config{
				DistanceWeight:    cfg.Dispatch.DistanceWeight,
				LoadWeight:        cfg.Dispatch.LoadWeight,
				PerformanceWeight: cfg.Dispatch.PerformanceWeight,
				MaxRadiusKm:       cfg.Dispatch.MaxRadiusKm,
				LocationFreshness: cfg.Dispatch.LocationFreshness,
			})
		},
		func(s *scoring.Scorer) dispatch.Scorer { return s },

		newNotifier,
		newDispatcher,

		func(r *repository.AttemptRepo) analytics.AttemptSource { return r },
		func(r *repository.CycleRepo) analytics.CycleSource { return r },
		analytics.NewService,
	)
}

type dispatcherIn struct {
	dig.In

	Orders   dispatch.OrderStore
	Riders   dispatch.RiderStore
	Attempts dispatch.AttemptStore
	Cycles   dispatch.CycleStore
	Notifier dispatch.Notifier
	Scorer   dispatch.Scorer
	Cfg      *config.Config
	Logger   logx.Logger
	Counters dispatch.Counters
}

func newDispatcher(in dispatcherIn) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(
		in.Orders,
		in.Riders,
		in.Attempts,
		in.Cycles,
		in.Notifier,
		in.Scorer,
		dispatch.Config{
			OfferTimeout:   in.Cfg.Dispatch.OfferTimeout,
			MaxQueueLength: in.Cfg.Dispatch.MaxQueueLength,
			BaseFare:       in.Cfg.Dispatch.BaseFare,
			PerKmFare:      in.Cfg.Dispatch.PerKmFare,
		},
		in.Logger,
		in.Counters,
	)
}
