package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls int64
	var last int64
	for i := 1; i <= 5; i++ {
		i := int64(i)
		d.Trigger(func() {
			atomic.AddInt64(&calls, 1)
			atomic.StoreInt64(&last, i)
		})
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, int64(5), atomic.LoadInt64(&last))
}

func TestDebouncerFlushRunsSynchronously(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var pending int64
	d.Trigger(func() { atomic.AddInt64(&pending, 1) })

	ran := false
	d.Flush(func() { ran = true })
	assert.True(t, ran)

	// The pending trigger was cancelled by the flush.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&pending))
}

func TestDebouncerStopRejectsFurtherTriggers(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	d.Stop()

	var calls int64
	d.Trigger(func() { atomic.AddInt64(&calls, 1) })
	d.Flush(func() { atomic.AddInt64(&calls, 1) })

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestPollSucceedsOnceCheckPasses(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 10, Delay: time.Millisecond}

	attempts := 0
	ok := policy.Poll(context.Background(), func() bool {
		attempts++
		return attempts >= 3
	})

	assert.True(t, ok)
	assert.Equal(t, 3, attempts)
}

func TestPollExhaustsAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 4, Delay: time.Millisecond}

	attempts := 0
	ok := policy.Poll(context.Background(), func() bool {
		attempts++
		return false
	})

	assert.False(t, ok)
	assert.Equal(t, 4, attempts)
}

func TestPollStopsOnContextCancel(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 1000, Delay: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	ok := policy.Poll(ctx, func() bool { return false })

	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second)
}
