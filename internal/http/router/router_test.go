package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/http/router"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/analytics"
	"rider-dispatch/internal/service/dispatch"
)

type noopDispatch struct{}

func (noopDispatch) Dispatch(context.Context, string) (dispatch.CycleStatus, error) {
	return dispatch.CycleStatus{}, nil
}

func (noopDispatch) Respond(context.Context, string, string, domain.OfferResponse) error {
	return nil
}

func (noopDispatch) ManualAssign(context.Context, string, string, string) (domain.AssignResult, error) {
	return domain.AssignResult{}, nil
}

type noopAnalytics struct{}

func (noopAnalytics) Report(context.Context, time.Duration) (analytics.Report, error) {
	return analytics.Report{}, nil
}

func newTestRouter() http.Handler {
	base := handlers.New(logx.Nop())
	disp := handlers.NewDispatchHandler(logx.Nop(), noopDispatch{})
	an := handlers.NewAnalyticsHandler(logx.Nop(), noopAnalytics{})
	return router.New(logx.Nop(), base, disp, an, nil)
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestRouter_HealthcheckHead(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}

func TestRouter_MetricsExposed(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DispatchRouteWired(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dispatch", nil)
	r.ServeHTTP(rec, req)

	// empty body is a decode error, which proves the handler is mounted
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
