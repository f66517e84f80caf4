package taskz

import (
	"context"

	"github.com/go-logr/logr"
	"golang.org/x/exp/slices"
)

// QueueObserver is notified about queue lifecycle. Callbacks run on the
// queue's executor: WillPerform before the operation in question starts,
// DidBecomeEmpty after the last pending operation has completed. The
// notification order across multiple observers is unspecified.
type QueueObserver interface {
	WillPerform(q *Queue, op UnitOperation)
	DidBecomeEmpty(q *Queue)
}

// Registration is the handle returned by AddObserver. Disposing it removes
// the observer it was created for; removing twice is a no-op.
type Registration struct {
	q   *Queue
	obs QueueObserver
}

func (r *Registration) Remove() {
	r.q.RemoveObserver(r.obs)
}

// Queue holds operations and drains them one at a time in FIFO order as
// they are added. Unlike Sequence and Group a queue never completes: it
// idles when the list runs dry and resumes on the next Add.
//
// All queue state is owned by the queue's executor. The exported methods
// may be called from any goroutine; they route their mutations through
// Executor.Submit rather than taking a lock. An operation added while
// another is in flight only joins the list and is guaranteed to start
// after the current one finishes, not before.
type Queue struct {
	e   *Executor
	log logr.Logger

	// Owned by the executor goroutine.
	pending    []UnitOperation
	performing bool
	observers  []QueueObserver
}

func NewQueue(e *Executor) *Queue {
	return &Queue{
		e:   e,
		log: e.log.WithName("queue"),
	}
}

// Add enqueues op. If the queue is idle, draining starts immediately.
func (q *Queue) Add(op UnitOperation) {
	q.e.Submit(func() {
		q.pending = append(q.pending, op)
		q.drain()
	})
}

// AddWithCompletion enqueues op and additionally invokes complete on the
// queue's executor once op itself completes. The wrapper completes exactly
// when the wrapped operation does, so drain semantics are unchanged.
func (q *Queue) AddWithCompletion(op UnitOperation, complete func()) {
	q.Add(OperationFunc[Unit, Unit](func(ctx context.Context, in Unit, done CompletionFunc[Unit]) {
		op.Perform(ctx, in, func(u Unit) {
			complete()
			done(u)
		})
	}))
}

// AddObserver registers obs and returns a handle that removes this
// registration. Registering an observer that is already registered is a
// no-op: the observer still receives exactly one notification per event.
func (q *Queue) AddObserver(obs QueueObserver) *Registration {
	q.e.Submit(func() {
		if q.indexOfObserver(obs) >= 0 {
			return
		}
		q.observers = append(q.observers, obs)
	})
	return &Registration{q: q, obs: obs}
}

// RemoveObserver deregisters obs by identity. Removing an observer that is
// not registered is a no-op.
func (q *Queue) RemoveObserver(obs QueueObserver) {
	q.e.Submit(func() {
		if i := q.indexOfObserver(obs); i >= 0 {
			q.observers = slices.Delete(q.observers, i, i+1)
		}
	})
}

// indexOfObserver must run on the executor goroutine.
func (q *Queue) indexOfObserver(obs QueueObserver) int {
	return slices.IndexFunc(q.observers, func(o QueueObserver) bool {
		return o == obs
	})
}

// drain runs on the executor goroutine. It starts the head operation
// unless one is already in flight; when the in-flight operation completes
// and the list has run dry, the queue goes idle and notifies observers.
func (q *Queue) drain() {
	if q.performing || len(q.pending) == 0 {
		return
	}

	op := q.pending[0]
	q.pending = q.pending[1:]
	q.performing = true

	// All currently registered observers are notified before the
	// operation begins.
	for _, obs := range q.observers {
		obs.WillPerform(q, op)
	}

	q.log.V(1).Info("performing operation", "pending", len(q.pending))
	op.Perform(context.Background(), Unit{}, func(Unit) {
		q.performing = false
		if len(q.pending) > 0 {
			q.drain()
			return
		}
		q.log.V(1).Info("queue became empty")
		for _, obs := range q.observers {
			obs.DidBecomeEmpty(q)
		}
	})
}
