package taskz

import (
	"context"
	"time"

	"github.com/go-logr/logr"
)

// Repeater performs one operation over and over until stopped. Stopping
// takes effect at the next completion boundary: the iteration in flight
// always runs to completion, and the one after it never starts.
//
// With an interval greater than zero the wrapped operation becomes a
// two-stage sequence of the operation and a Delay leaf, enforcing a
// minimum gap between one iteration's completion and the next start.
type Repeater struct {
	e   *Executor
	log logr.Logger
	op  UnitOperation

	// Owned by the executor goroutine.
	stopped bool
}

func NewRepeater(e *Executor, op UnitOperation, interval time.Duration) *Repeater {
	if interval > 0 {
		op = NewSequence(op, Delay(e, interval))
	}
	return &Repeater{
		e:       e,
		log:     e.log.WithName("repeater"),
		op:      op,
		stopped: true,
	}
}

// Start begins iterating. Calling Start on a running repeater is a no-op.
func (r *Repeater) Start(ctx context.Context) {
	r.e.Submit(func() {
		if !r.stopped {
			return
		}
		r.stopped = false
		r.log.V(1).Info("starting")
		r.iterate(ctx)
	})
}

// Stop prevents the next iteration from starting. It does not interrupt
// the iteration currently in flight.
func (r *Repeater) Stop() {
	r.e.Submit(func() {
		r.log.V(1).Info("stopping")
		r.stopped = true
	})
}

// iterate runs on the executor goroutine. Each completion resubmits the
// next iteration through the executor instead of recursing into it, so an
// indefinite run keeps constant stack depth.
func (r *Repeater) iterate(ctx context.Context) {
	if r.stopped {
		return
	}
	r.op.Perform(ctx, Unit{}, func(Unit) {
		r.e.Submit(func() {
			r.iterate(ctx)
		})
	})
}
