//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/repository"
)

func TestRiderRepo_EligiblePool_FiltersOfflineAndFull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewRiderRepo(tcPool)

	online := testRider(uuid.NewString())

	offline := testRider(uuid.NewString())
	offline.Online = false

	full := testRider(uuid.NewString())
	full.ActiveOrders = full.Capacity

	seedRider(t, online)
	seedRider(t, offline)
	seedRider(t, full)

	pool, err := repo.EligiblePool(ctx, time.Now().UTC())
	require.NoError(t, err)

	ids := make(map[string]bool, len(pool))
	for _, rd := range pool {
		ids[rd.ID] = true
	}
	require.True(t, ids[online.ID])
	require.False(t, ids[offline.ID])
	require.False(t, ids[full.ID])
}

func TestRiderRepo_GetRider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewRiderRepo(tcPool)

	want := testRider(uuid.NewString())
	seedRider(t, want)

	got, err := repo.GetRider(ctx, want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.ID, got.ID)
	require.InDelta(t, 0.8, got.AcceptanceRate, 1e-9)
	require.True(t, got.HasHistory)

	missing, err := repo.GetRider(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRiderRepo_ReleaseByOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	orders := repository.NewOrderRepo(tcPool)
	riders := repository.NewRiderRepo(tcPool)

	riderID := uuid.NewString()
	orderID := uuid.NewString()
	seedRider(t, testRider(riderID))
	seedOrder(t, testOrder(orderID))

	bound, err := orders.BindRider(ctx, orderID, riderID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, bound)

	require.NoError(t, riders.ReleaseByOrder(ctx, orderID))

	rd, err := riders.GetRider(ctx, riderID)
	require.NoError(t, err)
	require.Equal(t, 0, rd.ActiveOrders)

	// releasing again does not go negative
	require.NoError(t, riders.ReleaseByOrder(ctx, orderID))
	rd, err = riders.GetRider(ctx, riderID)
	require.NoError(t, err)
	require.Equal(t, 0, rd.ActiveOrders)

	// unknown order releases nothing
	require.NoError(t, riders.ReleaseByOrder(ctx, uuid.NewString()))
}
