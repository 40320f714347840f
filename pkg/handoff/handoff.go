package handoff

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	gscontext "github.com/vnykmshr/gosync/pkg/common/context"
	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
)

// ErrOccupied is returned by TryPut when the slot already holds a value.
var ErrOccupied = errors.New("handoff slot is occupied")

// Sentinel errors returned by blocking operations, aliased here so callers
// can match them without importing the errors package.
var (
	ErrClosed   = gserrors.ErrClosed
	ErrTimeout  = gserrors.ErrTimeout
	ErrCanceled = gserrors.ErrCanceled
)

// Config holds configuration for a Handoff channel.
type Config struct {
	// PutTimeout is the maximum time Put waits for the slot to empty
	// (0 = no timeout). A caller-provided context deadline still applies.
	PutTimeout time.Duration

	// TakeTimeout is the maximum time Take waits for the slot to fill
	// (0 = no timeout).
	TakeTimeout time.Duration

	// OnBlockPut is called when a put operation has to wait. It runs with
	// the channel's lock held and must not call back into the channel.
	OnBlockPut func()

	// OnBlockTake is called when a take operation has to wait, under the
	// same constraint as OnBlockPut.
	OnBlockTake func()
}

// DefaultConfig returns a default configuration with no timeouts.
func DefaultConfig() Config {
	return Config{}
}

// Stats holds a snapshot of handoff channel counters.
type Stats struct {
	// Puts is the total number of completed put operations.
	Puts int64

	// Takes is the total number of completed take operations.
	Takes int64

	// BlockedPuts is the number of puts that had to wait for an empty slot.
	BlockedPuts int64

	// BlockedTakes is the number of takes that had to wait for a value.
	BlockedTakes int64

	// Timeouts is the number of waits that ended with a timeout.
	Timeouts int64

	// Cancellations is the number of waits that were canceled.
	Cancellations int64
}

// Handoff is a single-slot rendezvous buffer handing values from a producer
// to a consumer in strict alternation: no value is overwritten, skipped, or
// read twice. Blocked callers wait on a guard without consuming CPU and are
// woken only when their condition may hold; the guard is always re-checked
// after waking.
type Handoff[T any] struct {
	config Config

	// mu protects the slot and both waiter lists. It is never held while
	// a caller is suspended.
	mu       sync.Mutex
	value    T
	occupied bool
	closed   bool

	// Waiters are queued and woken in arrival order. putWaiters are woken
	// when the slot empties, takeWaiters when it fills.
	putWaiters  []chan struct{}
	takeWaiters []chan struct{}

	// Counters are pure increments, so they use atomics rather than
	// widening the slot lock.
	puts          int64
	takes         int64
	blockedPuts   int64
	blockedTakes  int64
	timeouts      int64
	cancellations int64
}

// New creates a Handoff channel with default configuration.
func New[T any]() *Handoff[T] {
	return NewWithConfig[T](DefaultConfig())
}

// NewWithConfig creates a Handoff channel with the given configuration.
func NewWithConfig[T any](config Config) *Handoff[T] {
	return &Handoff[T]{config: config}
}

// Put stores value in the slot, waiting while the slot is occupied. It wakes
// at most one waiting consumer. Put returns ErrTimeout if the wait
// deadline elapses, ErrCanceled if ctx is canceled, and
// ErrClosed if the channel is closed; in all three cases the slot
// is left untouched.
func (h *Handoff[T]) Put(ctx context.Context, value T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if h.config.PutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.PutTimeout)
		defer cancel()
	}

	blocked := false
	h.mu.Lock()
	for {
		if h.closed {
			h.mu.Unlock()
			return ErrClosed
		}
		if !h.occupied {
			h.value = value
			h.occupied = true
			h.wakeTakerLocked()
			h.mu.Unlock()
			atomic.AddInt64(&h.puts, 1)
			return nil
		}

		if !blocked {
			blocked = true
			atomic.AddInt64(&h.blockedPuts, 1)
			if h.config.OnBlockPut != nil {
				h.config.OnBlockPut()
			}
		}

		ready := make(chan struct{})
		h.putWaiters = append(h.putWaiters, ready)
		h.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			h.abandonWait(&h.putWaiters, ready)
			return h.waitError(ctx)
		}

		// Re-check the guard: the slot may have been refilled by another
		// producer before this one resumed.
		h.mu.Lock()
	}
}

// PutWithTimeout is Put with a deadline relative to now.
func (h *Handoff[T]) PutWithTimeout(value T, timeout time.Duration) error {
	ctx, cancel := gscontext.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return h.Put(ctx, value)
}

// Take removes and returns the slot's value, waiting while the slot is
// empty. It wakes at most one waiting producer. Take returns
// ErrTimeout or ErrCanceled on an interrupted wait, with
// the slot left untouched. After Close, Take still drains a pending value
// and only then fails with ErrClosed.
func (h *Handoff[T]) Take(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	if h.config.TakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.TakeTimeout)
		defer cancel()
	}

	blocked := false
	h.mu.Lock()
	for {
		if h.occupied {
			value := h.value
			h.value = zero
			h.occupied = false
			h.wakePutterLocked()
			h.mu.Unlock()
			atomic.AddInt64(&h.takes, 1)
			return value, nil
		}
		if h.closed {
			h.mu.Unlock()
			return zero, ErrClosed
		}

		if !blocked {
			blocked = true
			atomic.AddInt64(&h.blockedTakes, 1)
			if h.config.OnBlockTake != nil {
				h.config.OnBlockTake()
			}
		}

		ready := make(chan struct{})
		h.takeWaiters = append(h.takeWaiters, ready)
		h.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			h.abandonWait(&h.takeWaiters, ready)
			return zero, h.waitError(ctx)
		}

		h.mu.Lock()
	}
}

// TakeWithTimeout is Take with a deadline relative to now.
func (h *Handoff[T]) TakeWithTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := gscontext.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return h.Take(ctx)
}

// TryPut stores value without blocking. It returns ErrOccupied if the slot
// holds a value and ErrClosed if the channel is closed.
func (h *Handoff[T]) TryPut(value T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	if h.occupied {
		return ErrOccupied
	}

	h.value = value
	h.occupied = true
	h.wakeTakerLocked()
	atomic.AddInt64(&h.puts, 1)
	return nil
}

// TryTake removes the slot's value without blocking. The boolean reports
// whether a value was present.
func (h *Handoff[T]) TryTake() (T, bool, error) {
	var zero T

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.occupied {
		value := h.value
		h.value = zero
		h.occupied = false
		h.wakePutterLocked()
		atomic.AddInt64(&h.takes, 1)
		return value, true, nil
	}
	if h.closed {
		return zero, false, ErrClosed
	}
	return zero, false, nil
}

// Close closes the channel and wakes all waiters. Blocked puts fail with
// ErrClosed; a blocked take may still receive a value that was
// pending at close time. Close is idempotent.
func (h *Handoff[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for _, w := range h.putWaiters {
		close(w)
	}
	for _, w := range h.takeWaiters {
		close(w)
	}
	h.putWaiters = nil
	h.takeWaiters = nil
	return nil
}

// IsClosed returns true if the channel has been closed.
func (h *Handoff[T]) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Occupied returns true if the slot currently holds a value.
func (h *Handoff[T]) Occupied() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.occupied
}

// Stats returns a snapshot of the channel's counters.
func (h *Handoff[T]) Stats() Stats {
	return Stats{
		Puts:          atomic.LoadInt64(&h.puts),
		Takes:         atomic.LoadInt64(&h.takes),
		BlockedPuts:   atomic.LoadInt64(&h.blockedPuts),
		BlockedTakes:  atomic.LoadInt64(&h.blockedTakes),
		Timeouts:      atomic.LoadInt64(&h.timeouts),
		Cancellations: atomic.LoadInt64(&h.cancellations),
	}
}

// wakePutterLocked wakes the oldest waiting producer, if any (must hold mu).
func (h *Handoff[T]) wakePutterLocked() {
	if len(h.putWaiters) > 0 {
		close(h.putWaiters[0])
		h.putWaiters = h.putWaiters[1:]
	}
}

// wakeTakerLocked wakes the oldest waiting consumer, if any (must hold mu).
func (h *Handoff[T]) wakeTakerLocked() {
	if len(h.takeWaiters) > 0 {
		close(h.takeWaiters[0])
		h.takeWaiters = h.takeWaiters[1:]
	}
}

// abandonWait removes ready from the waiter list after an interrupted wait.
// If the waiter had already been signaled, the wakeup is forwarded to the
// next waiter of the same class so the state change is not lost.
func (h *Handoff[T]) abandonWait(list *[]chan struct{}, ready chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, w := range *list {
		if w == ready {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}

	// Not in the list: the signal raced with the interruption. Forward it
	// if the guard condition still holds for this waiter class.
	if h.closed {
		return
	}
	switch list {
	case &h.putWaiters:
		if !h.occupied {
			h.wakePutterLocked()
		}
	case &h.takeWaiters:
		if h.occupied {
			h.wakeTakerLocked()
		}
	}
}

// waitError classifies an interrupted wait as a timeout or cancellation.
func (h *Handoff[T]) waitError(ctx context.Context) error {
	err := gserrors.FromContext(ctx.Err())
	if errors.Is(err, ErrTimeout) {
		atomic.AddInt64(&h.timeouts, 1)
	} else {
		atomic.AddInt64(&h.cancellations, 1)
	}
	return err
}
