package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_FirstCallNeverWaits(t *testing.T) {
	l := New(500 * time.Millisecond)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), "svc"))

	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_SameKeyIsDelayed(t *testing.T) {
	l := New(100 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, "svc"))
	start := time.Now()
	require.NoError(t, l.Wait(ctx, "svc"))

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_DifferentKeysDoNotInterfere(t *testing.T) {
	l := New(500 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, "x"))

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "y"))

	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_ConcurrentCallersSerialize(t *testing.T) {
	const callers = 5
	interval := 50 * time.Millisecond
	l := New(interval)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Wait(context.Background(), "svc")
		}()
	}
	wg.Wait()

	// One caller runs immediately, the rest reserve consecutive slots.
	want := time.Duration(callers-1) * interval
	assert.GreaterOrEqual(t, time.Since(start), want)
}

func TestWait_ContextCancellation(t *testing.T) {
	l := New(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, l.Wait(ctx, "svc"))

	done := make(chan error, 1)
	go func() { done <- l.Wait(ctx, "svc") }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}
