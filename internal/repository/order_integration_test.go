//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/repository"
)

func seedRider(t *testing.T, rd domain.Rider) {
	t.Helper()
	require.NoError(t, repository.NewRiderRepo(tcPool).UpsertRider(context.Background(), rd))
}

func seedOrder(t *testing.T, o domain.Order) {
	t.Helper()
	require.NoError(t, repository.NewOrderRepo(tcPool).UpsertOrder(context.Background(), o))
}

func testRider(id string) domain.Rider {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Rider{
		ID:             id,
		Online:         true,
		Location:       domain.LatLng{Lat: 6.45, Lng: 3.40},
		LocationAt:     now,
		Capacity:       3,
		AcceptanceRate: 0.8,
		CompletionRate: 0.9,
		HasHistory:     true,
		LastAssignedAt: now.Add(-time.Hour),
	}
}

func testOrder(id string) domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Order{
		ID:         id,
		Status:     domain.OrderReady,
		Restaurant: domain.LatLng{Lat: 6.45, Lng: 3.40},
		Dropoff:    domain.LatLng{Lat: 6.50, Lng: 3.35},
		CreatedAt:  now.Add(-10 * time.Minute),
		ReadyAt:    now,
	}
}

func TestOrderRepo_GetOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewOrderRepo(tcPool)

	orderID := uuid.NewString()
	want := testOrder(orderID)
	seedOrder(t, want)

	got, err := repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, domain.OrderReady, got.Status)
	require.InDelta(t, want.Restaurant.Lat, got.Restaurant.Lat, 1e-9)
	require.Nil(t, got.RiderID)
	require.Nil(t, got.AssignedAt)

	missing, err := repo.GetOrder(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestOrderRepo_BindRider_WinsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewOrderRepo(tcPool)
	riders := repository.NewRiderRepo(tcPool)

	riderID := uuid.NewString()
	orderID := uuid.NewString()
	seedRider(t, testRider(riderID))
	seedOrder(t, testOrder(orderID))

	at := time.Now().UTC().Truncate(time.Microsecond)

	bound, err := repo.BindRider(ctx, orderID, riderID, at)
	require.NoError(t, err)
	require.True(t, bound)

	// second bind loses: the status predicate sees rider_assigned
	bound, err = repo.BindRider(ctx, orderID, riderID, at.Add(time.Second))
	require.NoError(t, err)
	require.False(t, bound)

	got, err := repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderRiderAssigned, got.Status)
	require.NotNil(t, got.RiderID)
	require.Equal(t, riderID, *got.RiderID)

	rd, err := riders.GetRider(ctx, riderID)
	require.NoError(t, err)
	require.Equal(t, 1, rd.ActiveOrders)
	require.True(t, rd.LastAssignedAt.Equal(at))
}

func TestOrderRepo_BindRider_MissingOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewOrderRepo(tcPool)

	bound, err := repo.BindRider(ctx, uuid.NewString(), uuid.NewString(), time.Now().UTC())
	require.NoError(t, err)
	require.False(t, bound)
}
