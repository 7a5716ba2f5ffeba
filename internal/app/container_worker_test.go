package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/orders"
	"rider-dispatch/internal/transport/kafka"
)

type stubDispatchPort struct {
	err error
}

func (s stubDispatchPort) Dispatch(context.Context, string) (dispatch.CycleStatus, error) {
	return dispatch.CycleStatus{}, s.err
}

func (s stubDispatchPort) Cancel(string) bool { return false }

type stubRiderPort struct{}

func (stubRiderPort) ReleaseByOrder(context.Context, string) error { return nil }

func readyEvent() orders.Event {
	return orders.Event{OrderID: "ord-1", Status: "ready"}
}

func TestMakeOrdersHandler_InvalidIsPermanent(t *testing.T) {
	t.Parallel()

	p := orders.NewProcessor(stubDispatchPort{err: apperr.ErrInvalid}, stubRiderPort{})
	h := makeOrdersHandler(p)

	err := h(context.Background(), readyEvent())
	require.Error(t, err)

	var perm kafka.PermanentError
	require.ErrorAs(t, err, &perm)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestMakeOrdersHandler_TransientStaysTransient(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	p := orders.NewProcessor(stubDispatchPort{err: sentinel}, stubRiderPort{})
	h := makeOrdersHandler(p)

	err := h(context.Background(), readyEvent())
	require.ErrorIs(t, err, sentinel)

	var perm kafka.PermanentError
	require.False(t, errors.As(err, &perm))
}

func TestMakeOrdersHandler_SuccessPassesThrough(t *testing.T) {
	t.Parallel()

	p := orders.NewProcessor(stubDispatchPort{}, stubRiderPort{})
	h := makeOrdersHandler(p)

	require.NoError(t, h(context.Background(), readyEvent()))
}
