package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/dispatch"
)

// Runner runs the HTTP server
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, context.Canceled):
		_ = container.Invoke(func(logger logx.Logger) {
			logger.Info("shutdown requested, exiting")
		})
	case errors.Is(err, context.DeadlineExceeded):
		_ = container.Invoke(func(logger logx.Logger) {
			logger.Error("startup aborted: startup timeout exceeded")
		})
	default:
		log.Fatalf("run error: %v", err)
	}
}

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

type runIn struct {
	dig.In

	Ctx        context.Context
	Server     *http.Server
	Pprof      *http.Server `name:"pprof_server" optional:"true"`
	Pool       *pgxpool.Pool
	Logger     logx.Logger
	Dispatcher *dispatch.Dispatcher
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, "rider-dispatch", in.Logger)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof", in.Logger)
		}

		<-in.Ctx.Done()
		in.Logger.Info("shutting down rider-dispatch...")

		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		stopDispatcher(in.Dispatcher, in.Logger, 10*time.Second)
		closeResources(in.Pool, in.Server, in.Pprof, in.Logger)
		return nil
	})
}

func startServer(server *http.Server, name string, logger logx.Logger) {
	go func() {
		logger.Info("server listening",
			logx.String("name", name),
			logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error (%s): %v", name, err)
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

// stopDispatcher lets running offer cycles observe the cancellation and
// record their outcomes before the pool closes.
func stopDispatcher(d *dispatch.Dispatcher, logger logx.Logger, timeout time.Duration) {
	if d == nil {
		return
	}
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := d.Shutdown(shCtx); err != nil {
		logger.Error("dispatcher shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, server, pprofSrv *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Err(err))
	}
	if pprofSrv != nil {
		if err := pprofSrv.Close(); err != nil {
			logger.Error("pprof server close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
