// Package queue provides an unbounded FIFO shared by producers and one or more
// consumer goroutines. Consumers take the whole backlog in one batch.
package queue

import (
	"sync"
)

// Queue is a mutex guarded FIFO with a batch-draining blocking pop.
// Push never blocks and never rejects; there is no capacity bound.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// New creates an empty, open queue
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an item and wakes one waiter
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// WaitAndPop blocks until the queue is non-empty or closed.
// It appends the entire current contents to dst in FIFO order and returns it.
// Once the queue is closed it returns (dst, false) without draining; the
// remaining items are left for a final Pop by the owner.
func (q *Queue[T]) WaitAndPop(dst []T) ([]T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return dst, false
	}
	return q.takeLocked(dst), true
}

// Pop appends whatever is queued to dst without blocking
func (q *Queue[T]) Pop(dst []T) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.takeLocked(dst)
}

// Shutdown marks the queue closed and wakes every blocked consumer.
// Pushes are still accepted after Shutdown.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Reopen clears the closed flag so a new consumer can wait on the queue again
func (q *Queue[T]) Reopen() {
	q.mu.Lock()
	q.closed = false
	q.mu.Unlock()
}

// Closed reports whether Shutdown was called since the last Reopen
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// takeLocked moves all items into dst; q.mu must be held
func (q *Queue[T]) takeLocked(dst []T) []T {
	if len(q.items) == 0 {
		return dst
	}
	dst = append(dst, q.items...)
	clear(q.items)
	q.items = q.items[:0]
	return dst
}
