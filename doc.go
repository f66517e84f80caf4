// Package taskz is an in-process task-composition engine. A leaf Operation
// performs a unit of work and signals its completion exactly once; the
// package composes leaves into larger operations while preserving that
// single-completion contract at every level:
//
//   - Chain: a statically typed pipeline where each stage's output feeds
//     the next stage's input.
//   - Sequence: untyped operations performed strictly one after another.
//   - Group: untyped operations performed concurrently, joined when all
//     have completed.
//   - Queue: a self-draining FIFO that performs one operation at a time
//     and notifies observers when it goes idle.
//   - Repeater: re-performs one operation indefinitely until stopped.
//
// All composition bookkeeping and all completion callbacks run on a single
// Executor, a one-goroutine run loop with a timer facility. Operations may
// do their work on any goroutine, but must hand their completion back to
// the executor via Submit. Composites make forward progress purely through
// completion callbacks; nothing in the package blocks.
//
// There is no cancellation of a started operation, no timeouts, no retries
// and no failure channel: a composite only observes that a member
// completed, never whether the completion means success. Failure, when
// modeled, lives in the leaf's output type (see Result).
package taskz
