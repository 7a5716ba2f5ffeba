package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTokenBucketLimiter_BurstThenRefuse(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketPerWindow(clock, 3, time.Second, 0, 0)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should pass", i)
	}
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestTokenBucketLimiter_RefillsOverTime(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketPerWindow(clock, 2, time.Second, 0, 0)

	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))

	clock.Advance(500 * time.Millisecond)
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	// refill never exceeds burst
	clock.Advance(time.Hour)
	assert.True(t, l.Allow("k"))
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
}

func TestTokenBucketLimiter_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketPerWindow(clock, 1, time.Second, 0, 0)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestTokenBucketLimiter_MaxBucketsRefusesNewKeys(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketPerWindow(clock, 5, time.Second, 0, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.False(t, l.Allow("c"), "third key must be refused while the table is full")
	assert.True(t, l.Allow("a"), "existing keys keep working")
}

func TestTokenBucketLimiter_CleanupEvictsIdleBuckets(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketPerWindow(clock, 5, time.Second, time.Minute, 2)

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.False(t, l.Allow("c"))

	// after TTL passes both buckets are idle and get evicted, making room
	clock.Advance(3 * time.Minute)
	assert.True(t, l.Allow("c"))
}

func TestTokenBucketLimiter_DefaultsOnBadConfig(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewTokenBucketLimiter(clock, Config{Rate: -1, Burst: -1, MaxBuckets: -5})

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
}
