package taskz

import "context"

// Chain is a statically typed pipeline of operations where each stage's
// output feeds the next stage's input. A Chain is itself an Operation, so
// chains nest inside collections and other chains.
//
// Chain does not know about any specific stage types; it would otherwise
// need an unbounded number of generic parameters. The intermediate types
// are hidden inside the composed perform function, which is built by
// Append at the one point where two adjacent stages are statically known
// to match. There is no erased value and no runtime cast anywhere on the
// path.
type Chain[In, Out any] struct {
	perform OperationFunc[In, Out]
}

var _ Operation[int, string] = (*Chain[int, string])(nil)

// NewChain starts a chain with a single stage.
func NewChain[In, Out any](op Operation[In, Out]) *Chain[In, Out] {
	return &Chain[In, Out]{
		perform: op.Perform,
	}
}

// Append extends the chain by one stage whose input type is the chain's
// current output type. It returns a new chain handle representing the
// pipeline through that stage; the receiver is never mutated, so a chain
// value held by the caller always performs the stages it was built from.
func Append[In, Mid, Out any](c *Chain[In, Mid], next Operation[Mid, Out]) *Chain[In, Out] {
	return &Chain[In, Out]{
		perform: func(ctx context.Context, in In, complete CompletionFunc[Out]) {
			c.perform(ctx, in, func(mid Mid) {
				next.Perform(ctx, mid, complete)
			})
		},
	}
}

// Perform drives the chain from the first stage. Stages run strictly in
// append order, each receiving the previous stage's output; complete
// receives the final stage's output.
//
// A chain has no failure channel. A stage that wants to signal failure
// does so in its output type (see Result); the chain passes any output on
// unchanged, empty or not.
func (c *Chain[In, Out]) Perform(ctx context.Context, in In, complete CompletionFunc[Out]) {
	c.perform(ctx, in, complete)
}
