package workerpool

import (
	"context"
	"sync"

	"github.com/google/uuid"

	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
)

// taskEntry is a queued task with its submission identity and context.
type taskEntry struct {
	id   uuid.UUID
	task Task
	ctx  context.Context
}

// taskQueue is the pool's shared FIFO. A plain Go channel is deliberately
// not used: exact bounded/unbounded capacity, reject-on-full, and
// drain-after-close semantics all need direct control of the buffer.
// Blocked callers use the same guarded-wait discipline as pkg/handoff:
// register a signal channel under the lock, suspend without the lock, and
// re-check the guard after waking.
type taskQueue struct {
	mu       sync.Mutex
	entries  []taskEntry
	capacity int // <= 0 means unbounded
	closed   bool

	// Waiters are woken in arrival order. notEmpty waiters are worker
	// loops, notFull waiters are blocking submitters.
	notEmpty []chan struct{}
	notFull  []chan struct{}
}

func newTaskQueue(capacity int) *taskQueue {
	return &taskQueue{capacity: capacity}
}

// enqueue appends an entry in FIFO order. When the queue is bounded and
// full, blockOnFull selects between waiting for space and failing with
// ErrRejected. A closed queue always fails with ErrPoolClosed.
func (q *taskQueue) enqueue(ctx context.Context, entry taskEntry, blockOnFull bool) error {
	q.mu.Lock()
	for {
		if q.closed {
			q.mu.Unlock()
			return gserrors.ErrPoolClosed
		}
		if q.capacity <= 0 || len(q.entries) < q.capacity {
			q.entries = append(q.entries, entry)
			q.wakeOneLocked(&q.notEmpty)
			q.mu.Unlock()
			return nil
		}
		if !blockOnFull {
			q.mu.Unlock()
			return gserrors.ErrRejected
		}

		ready := make(chan struct{})
		q.notFull = append(q.notFull, ready)
		q.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			q.abandonNotFull(ready)
			return gserrors.FromContext(ctx.Err())
		}

		// Space may already have been taken by another submitter; the loop
		// re-checks the guard.
		q.mu.Lock()
	}
}

// dequeue removes the oldest entry, waiting while the queue is empty.
// It returns ok=false when stop closes, or when the queue has been closed
// and fully drained.
func (q *taskQueue) dequeue(stop <-chan struct{}) (taskEntry, bool) {
	q.mu.Lock()
	for {
		select {
		case <-stop:
			q.mu.Unlock()
			return taskEntry{}, false
		default:
		}

		if len(q.entries) > 0 {
			entry := q.entries[0]
			q.entries[0] = taskEntry{}
			q.entries = q.entries[1:]
			q.wakeOneLocked(&q.notFull)
			q.mu.Unlock()
			return entry, true
		}
		if q.closed {
			q.mu.Unlock()
			return taskEntry{}, false
		}

		ready := make(chan struct{})
		q.notEmpty = append(q.notEmpty, ready)
		q.mu.Unlock()

		select {
		case <-ready:
		case <-stop:
			q.abandonNotEmpty(ready)
			return taskEntry{}, false
		}

		q.mu.Lock()
	}
}

// close stops intake and wakes every waiter. Entries already queued remain
// dequeueable (drain) until removed or discarded.
func (q *taskQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	for _, w := range q.notEmpty {
		close(w)
	}
	for _, w := range q.notFull {
		close(w)
	}
	q.notEmpty = nil
	q.notFull = nil
}

// discardAll removes and returns every queued entry.
func (q *taskQueue) discardAll() []taskEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := q.entries
	q.entries = nil
	return entries
}

// len returns the number of queued entries.
func (q *taskQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// wakeOneLocked wakes the oldest waiter in list, if any (must hold mu).
func (q *taskQueue) wakeOneLocked(list *[]chan struct{}) {
	if len(*list) > 0 {
		close((*list)[0])
		*list = (*list)[1:]
	}
}

// abandonNotFull removes an interrupted submitter from the not-full list,
// forwarding an already-delivered wakeup so queue space is not lost.
func (q *taskQueue) abandonNotFull(ready chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if removeWaiter(&q.notFull, ready) {
		return
	}
	if !q.closed && (q.capacity <= 0 || len(q.entries) < q.capacity) {
		q.wakeOneLocked(&q.notFull)
	}
}

// abandonNotEmpty removes a stopped worker from the not-empty list,
// forwarding an already-delivered wakeup so a queued task is not stranded.
func (q *taskQueue) abandonNotEmpty(ready chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if removeWaiter(&q.notEmpty, ready) {
		return
	}
	if len(q.entries) > 0 {
		q.wakeOneLocked(&q.notEmpty)
	}
}

func removeWaiter(list *[]chan struct{}, ready chan struct{}) bool {
	for i, w := range *list {
		if w == ready {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
