/*
Package handoff provides a single-slot rendezvous channel that hands values
from a producer to a consumer in strict alternation.

The slot holds at most one pending value. A put waits while the slot is
occupied; a take waits while it is empty. No value is ever overwritten,
skipped, or read twice, and callers waiting on the guard consume no CPU.

Basic usage:

	slot := handoff.New[string]()
	defer slot.Close()

	go func() {
		for _, msg := range messages {
			if err := slot.Put(ctx, msg); err != nil {
				return
			}
		}
	}()

	for {
		msg, err := slot.Take(ctx)
		if err != nil {
			break
		}
		process(msg)
	}

Waiting discipline:

Blocked callers suspend on a per-wait signal channel, releasing the slot
lock first. A completed put wakes exactly one waiting consumer; a completed
take wakes exactly one waiting producer. Waiters are queued and woken in
arrival order. A woken caller always re-checks its guard condition before
proceeding, since the slot may have toggled state again before it resumed;
in that case it simply waits again.

Cancellation and timeouts:

Every blocking operation takes a context. An elapsed deadline surfaces as
ErrTimeout and a canceled context as ErrCanceled; neither leaves any change
to the slot behind. Config also supports default PutTimeout/TakeTimeout
deadlines applied per operation:

	slot := handoff.NewWithConfig[int](handoff.Config{
		TakeTimeout: 50 * time.Millisecond,
	})

	_, err := slot.Take(context.Background())
	if errors.Is(err, handoff.ErrTimeout) {
		// no producer showed up in time; the slot is still empty
	}

Non-blocking variants:

	if err := slot.TryPut(v); errors.Is(err, handoff.ErrOccupied) {
		// consumer has not drained the previous value yet
	}

	v, ok, err := slot.TryTake()

Closing:

Close wakes every waiter. Blocked puts fail with ErrClosed; a take
first drains a value that was pending at close time and only then fails.

Thread safety:

All operations are safe for concurrent use. The channel is designed for one
producer and one consumer, but multiple concurrent producers or consumers
are handled correctly: each value is still delivered exactly once, and
blocked peers remain suspended until the slot state allows exactly one of
them to proceed.
*/
package handoff
