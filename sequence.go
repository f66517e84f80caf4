package taskz

import "context"

// Sequence performs its operations strictly one after another: operation
// i+1 never starts before operation i has completed. The sequence's own
// completion fires after the last member's.
type Sequence struct {
	collection
}

var _ UnitOperation = (*Sequence)(nil)

func NewSequence(ops ...UnitOperation) *Sequence {
	s := &Sequence{}
	s.ops = append(s.ops, ops...)
	return s
}

// Perform runs the members serially over a snapshot of the current list.
// An empty sequence completes immediately.
func (s *Sequence) Perform(ctx context.Context, _ Unit, complete CompletionFunc[Unit]) {
	performSerially(ctx, s.snapshot(), complete)
}

// performSerially walks ops front to back, starting each one on the
// completion of its predecessor.
func performSerially(ctx context.Context, ops []UnitOperation, complete CompletionFunc[Unit]) {
	var step func(i int)
	step = func(i int) {
		if i == len(ops) {
			complete(Unit{})
			return
		}
		ops[i].Perform(ctx, Unit{}, func(Unit) {
			step(i + 1)
		})
	}
	step(0)
}
