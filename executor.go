package taskz

import (
	"errors"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// ExecState is the lifecycle state of an Executor.
type ExecState string

const (
	StateCreated        ExecState = "CREATED"
	StateRunning        ExecState = "RUNNING"
	StateCloseRequested ExecState = "CLOSE_REQUESTED"
	StateClosed         ExecState = "CLOSED"
)

var ErrExecutorStarted = errors.New("executor already started")

// Executor is the single logical execution context of a composition: one
// goroutine that owns all composition bookkeeping and runs all completion
// callbacks. Leaf operations may do their work anywhere, but must deliver
// their completion back onto the executor via Submit.
//
// The zero value is not usable; create executors with NewExecutor or
// App.NewExecutor.
type Executor struct {
	log  logr.Logger
	name string

	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	state   ExecState

	closed sync.WaitGroup
}

func NewExecutor(log logr.Logger, name string) *Executor {
	e := &Executor{
		log:   log.WithName(name),
		name:  name,
		state: StateCreated,
	}
	e.cond = sync.NewCond(&e.mu)
	e.closed.Add(1)
	return e
}

func (e *Executor) Name() string {
	return e.name
}

// changeState must be called with mu held.
func (e *Executor) changeState(newState ExecState) {
	e.log.V(1).Info("change state", "from", e.state, "to", newState)
	e.state = newState
}

// Submit enqueues fn to run on the executor goroutine. It is safe to call
// from any goroutine, including from within the loop itself, and never
// blocks on the loop's progress. Submissions to a closed executor are
// dropped.
func (e *Executor) Submit(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateClosed {
		e.log.V(1).Info("dropping submission, executor closed")
		return
	}
	e.pending = append(e.pending, fn)
	e.cond.Signal()
}

// AfterFunc is the executor's timer facility: it schedules fn onto the
// executor after d has elapsed. Timers that fire after the executor has
// closed are dropped.
func (e *Executor) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		e.Submit(fn)
	})
}

// Run executes submitted functions in submission order until Close. It
// blocks until the executor is closed and always returns nil on a graceful
// shutdown; a second Run returns ErrExecutorStarted.
func (e *Executor) Run() error {
	e.mu.Lock()
	if e.state != StateCreated {
		e.mu.Unlock()
		return ErrExecutorStarted
	}
	e.changeState(StateRunning)
	e.mu.Unlock()

	defer e.closed.Done()

	for {
		e.mu.Lock()
		for len(e.pending) == 0 && e.state == StateRunning {
			e.cond.Wait()
		}
		if len(e.pending) == 0 {
			// Close requested and the queue has drained.
			e.changeState(StateClosed)
			e.mu.Unlock()
			return nil
		}
		batch := e.pending
		e.pending = nil
		e.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}

// Close requests shutdown, lets already-submitted work drain and waits for
// the loop to exit. Work that perpetually resubmits itself (a running
// Repeater) must be stopped first, or Close waits forever.
func (e *Executor) Close() error {
	e.mu.Lock()
	switch e.state {
	case StateCreated:
		// Run was never called; nothing to drain.
		e.changeState(StateClosed)
		e.mu.Unlock()
		e.closed.Done()
		return nil
	case StateRunning:
		e.changeState(StateCloseRequested)
		e.cond.Broadcast()
	}
	e.mu.Unlock()

	e.closed.Wait()
	return nil
}
