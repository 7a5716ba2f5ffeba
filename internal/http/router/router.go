package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/http/middleware"
	"rider-dispatch/internal/http/middleware/ratelimit"
	"rider-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	base *handlers.Handlers,
	disp *handlers.DispatchHandler,
	an *handlers.AnalyticsHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Post("/dispatch", disp.Dispatch)
	r.Post("/offers/respond", disp.Respond)
	r.Post("/assign/manual", disp.ManualAssign)
	r.Get("/analytics/assignments", an.Assignments)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
