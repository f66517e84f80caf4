package taskz

import (
	"context"
	"sync/atomic"
)

// Group performs all of its operations concurrently and completes once
// every member has completed. Members are started in collection order;
// their completion order is unspecified.
//
// There is no partial-failure concept: a member that never completes
// stalls the group forever.
type Group struct {
	collection
}

var _ UnitOperation = (*Group)(nil)

func NewGroup(ops ...UnitOperation) *Group {
	g := &Group{}
	g.ops = append(g.ops, ops...)
	return g
}

// Perform starts every member and joins on a countdown. Members may
// complete on different goroutines, so the decrement-and-check is atomic;
// this countdown is the one piece of shared state in the package that
// multiple completion sources mutate. The group's completion is invoked
// by whichever member completes last. An empty group completes
// immediately.
func (g *Group) Perform(ctx context.Context, _ Unit, complete CompletionFunc[Unit]) {
	ops := g.snapshot()
	if len(ops) == 0 {
		complete(Unit{})
		return
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(ops)))

	for _, op := range ops {
		op.Perform(ctx, Unit{}, func(Unit) {
			if remaining.Add(-1) == 0 {
				complete(Unit{})
			}
		})
	}
}
