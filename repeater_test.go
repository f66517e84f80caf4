package taskz

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

// probeCount reads count on the executor goroutine.
func probeCount(e *Executor, count *int) int {
	probe := make(chan int, 1)
	e.Submit(func() {
		probe <- *count
	})
	return <-probe
}

// waitForCount polls until count reaches want.
func waitForCount(t *testing.T, e *Executor, count *int, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if probeCount(e, count) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("count never reached %d", want)
}

func TestRepeater(t *testing.T) {
	t.Run("stop takes effect at the iteration boundary", func(t *testing.T) {
		e := newTestExecutor(t)

		count := 0
		var r *Repeater
		r = NewRepeater(e, Do(func() {
			count++
			if count == 3 {
				// Stopping mid-iteration: this iteration still runs to
				// completion, the next one never starts.
				r.Stop()
			}
		}), 0)

		r.Start(context.Background())
		waitForCount(t, e, &count, 3)

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, 3, probeCount(e, &count))
	})

	t.Run("start on a running repeater is a no-op", func(t *testing.T) {
		e := newTestExecutor(t)

		count := 0
		var r *Repeater
		r = NewRepeater(e, Do(func() {
			count++
			r.Stop()
		}), 0)

		r.Start(context.Background())
		r.Start(context.Background())

		waitForCount(t, e, &count, 1)
		time.Sleep(30 * time.Millisecond)
		// A second loop would have produced a second iteration.
		assert.Equal(t, 1, probeCount(e, &count))
	})

	t.Run("restart after stop", func(t *testing.T) {
		e := newTestExecutor(t)

		count := 0
		var r *Repeater
		r = NewRepeater(e, Do(func() {
			count++
			r.Stop()
		}), 0)

		r.Start(context.Background())
		waitForCount(t, e, &count, 1)
		r.Start(context.Background())
		waitForCount(t, e, &count, 2)
	})

	t.Run("interval enforces a gap between iterations", func(t *testing.T) {
		e := newTestExecutor(t)

		count := 0
		var r *Repeater
		start := time.Now()
		r = NewRepeater(e, Do(func() {
			count++
			if count == 3 {
				r.Stop()
			}
		}), 20*time.Millisecond)

		r.Start(context.Background())
		waitForCount(t, e, &count, 3)

		// Two full intervals sit between the three iterations' starts.
		assert.True(t, time.Since(start) >= 40*time.Millisecond)
	})
}
