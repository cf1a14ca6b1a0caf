package equity

import (
	"context"
	"sync"
	"sync/atomic"
)

// Coordinator serializes recomputation triggered by rapid input changes so
// only the result of the latest request is ever surfaced.
//
// Every submission carries a monotonically increasing generation token and
// cancels the context of the submission before it. When a task completes,
// its result is applied only if its token still equals the current
// generation; results from superseded tasks are discarded silently. The
// coordinator imposes no timeout of its own and keeps no background
// goroutine beyond the in-flight task.
type Coordinator[T any] struct {
	generation atomic.Uint64

	mu         sync.Mutex
	cancelPrev context.CancelFunc
	latest     T
	latestGen  uint64
	hasLatest  bool
}

// NewCoordinator constructs an empty coordinator.
func NewCoordinator[T any]() *Coordinator[T] {
	return &Coordinator[T]{}
}

// Submit starts a recompute for the latest input state. The previous
// in-flight task's context is cancelled immediately. The returned channel
// closes when the task has completed and its result has been applied or
// discarded, which tests and callers can use to await settlement.
func (c *Coordinator[T]) Submit(ctx context.Context, task func(ctx context.Context) (T, error)) (uint64, <-chan struct{}) {
	taskCtx, cancel := context.WithCancel(ctx)

	// The token is issued under the same lock that swaps the cancel func so
	// a concurrent Submit can never cancel a newer submission's context.
	c.mu.Lock()
	generation := c.generation.Add(1)
	if c.cancelPrev != nil {
		c.cancelPrev()
	}
	c.cancelPrev = cancel
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		result, err := task(taskCtx)
		if err != nil {
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		// Apply only when no newer submission superseded this task.
		if generation != c.generation.Load() {
			return
		}
		c.latest = result
		c.latestGen = generation
		c.hasLatest = true
	}()

	return generation, done
}

// Latest returns the most recent applied result and its generation. The
// boolean reports whether any result has been applied yet.
func (c *Coordinator[T]) Latest() (T, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.latestGen, c.hasLatest
}

// Generation returns the current (most recently issued) generation token.
func (c *Coordinator[T]) Generation() uint64 {
	return c.generation.Load()
}
