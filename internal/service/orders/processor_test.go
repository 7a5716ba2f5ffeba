package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/orders"
)

func TestProcessor_Handle_Ready_DispatchOK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	d.EXPECT().
		Dispatch(gomock.Any(), "order-1").
		Return(dispatch.CycleStatus{OrderID: "order-1", State: dispatch.StateOffering}, nil)

	err := p.Handle(context.Background(), orders.Event{
		OrderID:   "order-1",
		Status:    "  READY  ",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestProcessor_Handle_Ready_StaleEventIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	d.EXPECT().
		Dispatch(gomock.Any(), "order-1").
		Return(dispatch.CycleStatus{}, apperr.ErrConflict)
	d.EXPECT().
		Dispatch(gomock.Any(), "order-2").
		Return(dispatch.CycleStatus{}, apperr.ErrInvalidOrderState)

	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "ready"}))
	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "ready"}))
}

func TestProcessor_Handle_Ready_OtherErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	wantErr := errors.New("boom")
	d.EXPECT().
		Dispatch(gomock.Any(), "order-1").
		Return(dispatch.CycleStatus{}, wantErr)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "ready"})
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_Canceled_StopsCycle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	d.EXPECT().Cancel("order-1").Return(true)
	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "canceled"}))

	// no running cycle is fine too
	d.EXPECT().Cancel("order-2").Return(false)
	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "deleted"}))
}

func TestProcessor_Handle_Delivered_ReleasesRider(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	r.EXPECT().ReleaseByOrder(gomock.Any(), "order-1").Return(nil)
	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "delivered"}))

	r.EXPECT().ReleaseByOrder(gomock.Any(), "order-2").Return(apperr.ErrNotFound)
	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "completed"}))
}

func TestProcessor_Handle_UnknownStatusIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockDispatchPort(ctrl)
	r := NewMockRiderPort(ctrl)

	p := orders.NewProcessor(d, r)

	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "cooking"}))
}
