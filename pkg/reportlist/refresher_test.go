package reportlist

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

const (
	waitFor = 2 * time.Second
	poll    = time.Millisecond
)

func TestRefresher_FiresOnStartAndEveryInterval(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	var calls atomic.Int32
	r := NewRefresher(30*time.Second, func() { calls.Add(1) }, WithClock(fc))

	require.True(t, r.Start(context.Background()))
	t.Cleanup(r.Stop)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, poll)

	for i := int32(2); i <= 4; i++ {
		fc.Step(30 * time.Second)
		want := i
		require.Eventually(t, func() bool { return calls.Load() == want }, waitFor, poll)
	}

	fc.Step(10 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 4 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestRefresher_DoubleStartRunsOneLoop(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	var calls atomic.Int32
	r := NewRefresher(30*time.Second, func() { calls.Add(1) }, WithClock(fc))

	require.True(t, r.Start(context.Background()))
	assert.False(t, r.Start(context.Background()), "second start must be refused")
	t.Cleanup(r.Stop)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, poll)

	// Two minutes of simulated time: one call at start plus four ticks.
	for i := int32(2); i <= 5; i++ {
		fc.Step(30 * time.Second)
		want := i
		require.Eventually(t, func() bool { return calls.Load() >= want }, waitFor, poll)
	}
	assert.Never(t, func() bool { return calls.Load() > 5 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestRefresher_StopIsIdempotentAndHalts(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	var calls atomic.Int32
	r := NewRefresher(time.Second, func() { calls.Add(1) }, WithClock(fc))

	require.True(t, r.Start(context.Background()))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, poll)
	assert.True(t, r.Running())

	r.Stop()
	r.Stop()
	assert.False(t, r.Running())

	fc.Step(5 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	require.True(t, r.Start(context.Background()), "restart after stop")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, waitFor, poll)
	r.Stop()
}

func TestRefresher_ContextCancelEndsLoop(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	var calls atomic.Int32
	r := NewRefresher(time.Second, func() { calls.Add(1) }, WithClock(fc))

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, r.Start(ctx))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, poll)
	cancel()
	require.Eventually(t, func() bool { return !r.Running() }, waitFor, poll)

	fc.Step(3 * time.Second)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	require.True(t, r.Start(context.Background()), "restart without Stop")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, waitFor, poll)
	require.Eventually(t, fc.HasWaiters, waitFor, poll)
	fc.Step(time.Second)
	require.Eventually(t, func() bool { return calls.Load() == 3 }, waitFor, poll)

	r.Stop()
	assert.False(t, r.Running())
	r.Stop()
}

func TestNewRefresher_DefaultInterval(t *testing.T) {
	t.Parallel()

	r := NewRefresher(0, func() {})
	assert.Equal(t, DefaultRefreshInterval, r.interval)
	assert.Equal(t, 30*time.Second, DefaultRefreshInterval)
}
