/*
Package gosync provides in-process coordination primitives for concurrent Go
applications: a guarded single-slot handoff channel and a fixed worker pool.

Handoff (pkg/handoff):
  - handoff: Single-slot rendezvous buffer with strict producer/consumer
    alternation, guarded waiting, cancellation and timeouts

Task Execution (pkg/workerpool):
  - workerpool: Fixed set of long-lived workers draining a FIFO task queue,
    with bounded or unbounded queueing, graceful shutdown, task failure
    isolation, and automatic worker replacement

Example usage:

	import (
		"github.com/vnykmshr/gosync/pkg/handoff"
		"github.com/vnykmshr/gosync/pkg/workerpool"
	)

	slot := handoff.New[int]()
	pool, _ := workerpool.NewSafe(5, 100) // 5 workers, queue 100
	_ = pool.Start()

	_ = slot.Put(ctx, 42)
	_ = pool.Submit(task)

The two components are independent; they share only the common error and
metrics packages.
*/
package gosync
