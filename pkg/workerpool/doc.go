/*
Package workerpool provides a fixed-size worker pool for concurrent task
execution in Go applications.

A worker pool manages a fixed number of long-lived worker goroutines that
drain a shared FIFO task queue. This pattern controls resource usage, limits
concurrency, and degrades gracefully under overload instead of collapsing.

Basic usage:

	pool, err := workerpool.NewSafe(4, 100) // 4 workers, queue capacity 100
	if err != nil {
		log.Fatal(err)
	}
	if err := pool.Start(); err != nil {
		log.Fatal(err)
	}
	defer func() { <-pool.Shutdown() }()

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit: %v", err)
	}

	result := <-pool.Results()
	if result.Error != nil {
		log.Printf("Task failed: %v", result.Error)
	}

Lifecycle:

A pool moves through four one-way states:

	Created -> Running -> ShuttingDown -> Stopped

NewWithConfig creates the pool in Created; Start moves it to Running and
spawns exactly WorkerCount workers. Shutdown and ShutdownNow both move it to
ShuttingDown and, once the workers have terminated, to Stopped. A stopped
pool never runs again, and Submit on a pool that has begun shutdown always
fails with ErrPoolClosed.

Queueing and overflow:

The task queue is FIFO. QueueSize 0 selects an unbounded queue; a positive
QueueSize bounds it, with the overflow behavior chosen by Policy:

	// Backpressure: Submit blocks until space frees (default)
	workerpool.Config{QueueSize: 100, Policy: workerpool.BlockOnFull}

	// Fail fast: Submit returns ErrRejected immediately
	workerpool.Config{QueueSize: 100, Policy: workerpool.RejectOnFull}

A blocked Submit honors its context: cancellation surfaces as
ErrCanceled and an elapsed deadline as ErrTimeout. Submissions
are never silently dropped.

Dequeue order is FIFO, but completion order across workers is not
guaranteed: two tasks can finish out of submission order when they run on
different workers.

Failure isolation:

A task's own failure (an error return or a panic) is confined to that
task. The worker records it in the task's Result, reports an
EventTaskFailure to the OnEvent sink, and moves on. Only a fault in the
worker's own dispatch loop (for example a panicking lifecycle callback)
terminates a worker; the pool then immediately spawns a replacement to
maintain the configured count and reports EventWorkerFault and
EventWorkerReplaced. Worker faults are never surfaced to task submitters.

Shutdown semantics:

	// Graceful: all queued and in-flight tasks complete first
	<-pool.Shutdown()

	// Immediate: in-flight tasks are cooperatively canceled via their
	// context; queued tasks that never started are reported as discarded
	<-pool.ShutdownNow()

Both return a channel that closes when the pool reaches Stopped. ShutdownNow
guarantees that no new task begins after it returns, and reports every
discarded queued task as an EventTaskDiscarded, never a silent drop.

Thread safety:

All pool operations are safe for concurrent use from multiple goroutines.
Pool statistics are plain increment counters maintained with sync/atomic;
compound queue state is guarded by a single mutex scoped to the queue.
*/
package workerpool
