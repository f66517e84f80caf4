package taskz

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestGroup_Perform(t *testing.T) {
	t.Run("empty group completes immediately", func(t *testing.T) {
		completed := false
		NewGroup().Perform(context.Background(), Unit{}, func(Unit) {
			completed = true
		})
		assert.True(t, completed)
	})

	t.Run("members start in collection order", func(t *testing.T) {
		var started []int
		completions := make([]CompletionFunc[Unit], 0, 3)

		grp := NewGroup()
		for i := 0; i < 3; i++ {
			i := i
			grp.Add(OperationFunc[Unit, Unit](func(_ context.Context, _ Unit, complete CompletionFunc[Unit]) {
				started = append(started, i)
				completions = append(completions, complete)
			}))
		}

		completed := false
		grp.Perform(context.Background(), Unit{}, func(Unit) {
			completed = true
		})

		assert.Equal(t, []int{0, 1, 2}, started)
		assert.False(t, completed)

		// Complete out of order; the group joins regardless.
		completions[2](Unit{})
		completions[0](Unit{})
		assert.False(t, completed)
		completions[1](Unit{})
		assert.True(t, completed)
	})

	t.Run("completes once after all members on the executor", func(t *testing.T) {
		e := newTestExecutor(t)

		const n = 8
		var memberDone atomic.Int64
		grp := NewGroup()
		for i := 0; i < n; i++ {
			grp.Add(OperationFunc[Unit, Unit](func(_ context.Context, _ Unit, complete CompletionFunc[Unit]) {
				go func() {
					time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
					e.Submit(func() {
						memberDone.Add(1)
						complete(Unit{})
					})
				}()
			}))
		}

		var groupCompletions atomic.Int64
		doneAt := make(chan int64, 1)
		e.Submit(func() {
			grp.Perform(context.Background(), Unit{}, func(Unit) {
				groupCompletions.Add(1)
				doneAt <- memberDone.Load()
			})
		})

		select {
		case at := <-doneAt:
			assert.Equal(t, int64(n), at)
		case <-time.After(5 * time.Second):
			t.Fatal("group never completed")
		}

		// No late second completion.
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int64(1), groupCompletions.Load())
	})
}

// The countdown is the one place in the package where completions from
// different goroutines mutate shared state, so hammer it: every member
// completes directly from its own goroutine with randomized timing.
func TestGroup_CountdownStress(t *testing.T) {
	for run := 0; run < 20; run++ {
		const n = 100

		var memberDone atomic.Int64
		grp := NewGroup()
		for i := 0; i < n; i++ {
			grp.Add(OperationFunc[Unit, Unit](func(_ context.Context, _ Unit, complete CompletionFunc[Unit]) {
				go func() {
					time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
					memberDone.Add(1)
					complete(Unit{})
				}()
			}))
		}

		var groupCompletions atomic.Int64
		done := make(chan struct{})
		grp.Perform(context.Background(), Unit{}, func(Unit) {
			if groupCompletions.Add(1) == 1 {
				close(done)
			}
		})

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("group never completed")
		}

		assert.Equal(t, int64(n), memberDone.Load())
		assert.Equal(t, int64(1), groupCompletions.Load())
	}
}
