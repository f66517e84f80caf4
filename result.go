package taskz

import (
	"time"

	"github.com/google/uuid"
)

// Result is a success-or-failure shaped operation output. Composites never
// inspect it: a failed Result still counts as a completion, and no
// composite short-circuits on it. It exists as a payload convention for
// leaf authors who want to carry failure through a chain.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     T
	err       error
	isSuccess bool
}

func Success[T any](v T) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		value:     v,
		isSuccess: true,
	}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		err:       err,
	}
}

func (r Result[T]) Value() T             { return r.value }
func (r Result[T]) Err() error           { return r.err }
func (r Result[T]) IsSuccess() bool      { return r.isSuccess }
func (r Result[T]) ID() uuid.UUID        { return r.id }
func (r Result[T]) CreatedAt() time.Time { return r.createdAt }

// TryTransform lifts an error-returning function into a synchronous leaf
// with a Result output.
func TryTransform[In, Out any](fn func(In) (Out, error)) Operation[In, Result[Out]] {
	return Transform(func(in In) Result[Out] {
		out, err := fn(in)
		if err != nil {
			return Failure[Out](err)
		}
		return Success(out)
	})
}
