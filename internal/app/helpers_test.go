package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func swapNewPool(t *testing.T, fn func(context.Context, string) (*pgxpool.Pool, error)) {
	t.Helper()
	old := newPool
	newPool = fn
	t.Cleanup(func() { newPool = old })
}

func TestConnectDbWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	stubPool := &pgxpool.Pool{}
	swapNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return stubPool, nil
	})

	pool, err := connectDbWithRetry(context.Background(), "dsn", 5, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, stubPool, pool)
	require.Equal(t, 3, calls)
}

func TestConnectDbWithRetry_GivesUp(t *testing.T) {
	calls := 0
	swapNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	_, err := connectDbWithRetry(context.Background(), "dsn", 3, time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 3 attempts")
	require.Equal(t, 3, calls)
}

func TestConnectDbWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	swapNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		cancel()
		return nil, errors.New("connection refused")
	})

	_, err := connectDbWithRetry(ctx, "dsn", 5, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
