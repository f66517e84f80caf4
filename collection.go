package taskz

import "golang.org/x/exp/slices"

// collection is the shared ordered-list container behind Sequence and
// Group. The list may be extended until the collection is performed; each
// Perform takes a private snapshot, so mutations made afterwards never
// affect an in-flight run.
type collection struct {
	ops []UnitOperation
}

// Add appends op to the collection.
func (c *collection) Add(op UnitOperation) {
	c.ops = append(c.ops, op)
}

// Len returns the number of operations currently in the collection.
func (c *collection) Len() int {
	return len(c.ops)
}

func (c *collection) snapshot() []UnitOperation {
	return slices.Clone(c.ops)
}
