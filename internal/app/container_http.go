package app

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/http/pprofserver"
	"rider-dispatch/internal/http/router"
)

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewAnalyticsUsecase,
		handlers.NewAnalyticsHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
		newPprofServer,
	)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// newPprofServer returns a nil server when no pprof address is configured.
func newPprofServer(cfg *config.Config) pprofServerOut {
	if cfg.Pprof.Addr == "" {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}
