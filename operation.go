package taskz

import (
	"context"
	"time"
)

// CompletionFunc receives an operation's single output value.
type CompletionFunc[Out any] func(Out)

// Operation is a unit of work: Perform runs the work for the given input
// and invokes complete with the output exactly once, either before Perform
// returns or later, after suspending.
//
// Contract for implementors:
//   - complete must be invoked exactly once per Perform call. Never zero
//     times (the enclosing composite waits forever) and never twice (this
//     corrupts composite bookkeeping, worst of all a Group's countdown).
//     This is a precondition, not checked at runtime.
//   - complete must be invoked on the Executor the composition runs on.
//     Internal work may happen on any goroutine; hand the output back via
//     Executor.Submit.
//   - ctx is passed through to leaves verbatim. Composites never watch
//     ctx.Done(): there is no framework-level cancellation of an operation
//     that has already started.
type Operation[In, Out any] interface {
	Perform(ctx context.Context, in In, complete CompletionFunc[Out])
}

// OperationFunc adapts a closure to Operation. It is the raw asynchronous
// leaf: the closure receives the completion callback and decides when (and
// whether) to invoke it. A closure that never completes stalls the
// enclosing composite forever.
type OperationFunc[In, Out any] func(ctx context.Context, in In, complete CompletionFunc[Out])

func (f OperationFunc[In, Out]) Perform(ctx context.Context, in In, complete CompletionFunc[Out]) {
	f(ctx, in, complete)
}

// Unit is the empty payload of operations that carry no value.
type Unit struct{}

// UnitOperation is the member type of Sequence, Group and Queue.
type UnitOperation = Operation[Unit, Unit]

// Transform returns a synchronous leaf operation: it applies fn to the
// input and completes before Perform returns.
func Transform[In, Out any](fn func(In) Out) Operation[In, Out] {
	return OperationFunc[In, Out](func(_ context.Context, in In, complete CompletionFunc[Out]) {
		complete(fn(in))
	})
}

// Do returns a synchronous Unit leaf that runs fn and completes
// immediately.
func Do(fn func()) UnitOperation {
	return OperationFunc[Unit, Unit](func(_ context.Context, _ Unit, complete CompletionFunc[Unit]) {
		fn()
		complete(Unit{})
	})
}

// Delay returns a leaf that completes on e once d has elapsed, performing
// no other work.
func Delay(e *Executor, d time.Duration) UnitOperation {
	return OperationFunc[Unit, Unit](func(_ context.Context, _ Unit, complete CompletionFunc[Unit]) {
		e.AfterFunc(d, func() {
			complete(Unit{})
		})
	})
}
