package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	gscontext "github.com/vnykmshr/gosync/pkg/common/context"
	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
)

// Start spawns the configured number of workers. A pool starts at most once.
func (p *workerPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateCreated {
		return gserrors.NewOperationError("workerpool", "Start",
			errors.New("pool already started")).
			WithContext(fmt.Sprintf("state is %s", p.state))
	}
	p.state = StateRunning

	for i := 0; i < p.config.WorkerCount; i++ {
		p.spawnWorkerLocked()
	}
	return nil
}

// spawnWorkerLocked starts one worker goroutine (must hold mu).
func (p *workerPool) spawnWorkerLocked() int {
	id := int(atomic.AddInt64(&p.nextWorkerID, 1)) - 1
	w := &worker{id: id, pool: p}
	p.workerWg.Add(1)
	go w.run()
	return id
}

// Submit adds a task to the pool for execution.
// The task will be executed with context.Background().
// Use SubmitWithContext to provide a custom context.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithTimeout submits a task with a timeout for queuing.
func (p *workerPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	ctx, cancel := gscontext.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return p.SubmitWithContext(ctx, task)
}

// SubmitWithContext adds a task to the pool for execution with the given
// context. The context governs both the wait for queue space (BlockOnFull)
// and, later, the task's execution. Tasks are never silently dropped: a
// submission either queues or fails with a distinct condition.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return gserrors.NewValidationError("workerpool", "task", nil, "cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Check for a pre-canceled context before attempting to queue.
	// This ensures deterministic behavior for pre-canceled contexts.
	select {
	case <-ctx.Done():
		return gserrors.FromContext(ctx.Err())
	default:
	}

	// Submissions are accepted in Created (queued until Start) and Running.
	switch p.State() {
	case StateShuttingDown, StateStopped:
		return gserrors.ErrPoolClosed
	}

	entry := taskEntry{id: uuid.New(), task: task, ctx: ctx}
	if err := p.queue.enqueue(ctx, entry, p.config.Policy == BlockOnFull); err != nil {
		return err
	}

	atomic.AddInt64(&p.totalSubmitted, 1)
	return nil
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown: intake stops, all queued and
// in-flight tasks complete, then workers terminate.
func (p *workerPool) Shutdown() <-chan struct{} {
	return p.shutdown(true)
}

// ShutdownNow initiates an immediate shutdown: intake stops, in-flight
// tasks are cooperatively canceled, and queued tasks that never started are
// reported as discarded.
func (p *workerPool) ShutdownNow() <-chan struct{} {
	return p.shutdown(false)
}

func (p *workerPool) shutdown(drain bool) <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		fromCreated := p.state == StateCreated
		p.state = StateShuttingDown
		p.mu.Unlock()

		close(p.shutdownCh)

		// Stop intake; blocked submitters wake and fail with ErrPoolClosed.
		p.queue.close()

		if !drain || fromCreated {
			// A never-started pool has no workers to drain the queue, so a
			// graceful shutdown from Created discards like ShutdownNow.
			// Queued entries are discarded before in-flight tasks are
			// canceled: a worker whose task returns on cancellation must
			// find the queue empty, never a task to start.
			close(p.stopCh)
			p.discardQueued()
			p.taskCancel()
		}

		go func() {
			p.workerWg.Wait()
			p.mu.Lock()
			p.state = StateStopped
			p.mu.Unlock()
			close(p.resultQueue)
			close(p.done)
		}()
	})
	return p.done
}

// discardQueued reports every still-queued task as discarded so that no
// submission disappears without a trace.
func (p *workerPool) discardQueued() {
	for _, entry := range p.queue.discardAll() {
		p.report(Event{
			Kind:     EventTaskDiscarded,
			Message:  "queued task discarded by immediate shutdown",
			TaskID:   entry.id,
			WorkerID: -1,
			Err:      gserrors.ErrPoolClosed,
			Time:     time.Now(),
		})
	}
}

// State returns the pool's lifecycle state.
func (p *workerPool) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Size returns the configured number of workers.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return p.queue.len()
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(atomic.LoadInt32(&p.activeWorkers))
}

// TotalSubmitted returns the total number of tasks accepted by the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return atomic.LoadInt64(&p.totalSubmitted)
}

// TotalCompleted returns the total number of tasks executed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	return atomic.LoadInt64(&p.totalCompleted)
}

// run is the main loop for a worker. Task failures never escape the
// execution boundary in executeTask; anything recovered here is a fault in
// the dispatch loop itself and triggers worker replacement.
func (w *worker) run() {
	p := w.pool
	defer p.workerWg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.handleWorkerFault(w.id, r)
		}
		if p.config.OnWorkerStop != nil {
			p.config.OnWorkerStop(w.id)
		}
	}()

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(w.id)
	}

	for {
		entry, ok := p.queue.dequeue(p.stopCh)
		if !ok {
			return
		}
		w.executeTask(entry)
	}
}

// executeTask runs one task and delivers its result. Lifecycle callbacks
// run on the dispatch loop, outside the task isolation boundary.
func (w *worker) executeTask(entry taskEntry) {
	p := w.pool

	if p.config.OnTaskStart != nil {
		p.config.OnTaskStart(w.id, entry.task)
	}

	atomic.AddInt32(&p.activeWorkers, 1)
	start := time.Now()
	err := w.runTask(entry)
	duration := time.Since(start)
	atomic.AddInt32(&p.activeWorkers, -1)
	atomic.AddInt64(&p.totalCompleted, 1)

	result := Result{
		TaskID:   entry.id,
		Task:     entry.task,
		Error:    err,
		Duration: duration,
		WorkerID: w.id,
	}

	if err != nil {
		p.report(Event{
			Kind:     EventTaskFailure,
			Message:  "task failed",
			TaskID:   entry.id,
			WorkerID: w.id,
			Err:      err,
			Time:     time.Now(),
		})
	}

	w.sendResult(result)

	if p.config.OnTaskComplete != nil {
		p.config.OnTaskComplete(w.id, result)
	}
}

// runTask is the task isolation boundary: errors and panics from the task
// body are confined to the returned error.
func (w *worker) runTask(entry taskEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(entry.task, r)
				return
			}
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()

	ctx := entry.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	// Tie execution to the pool task context so ShutdownNow cancels
	// in-flight work cooperatively.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(w.pool.taskCtx, cancel)
	defer stop()

	if w.pool.config.TaskTimeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, w.pool.config.TaskTimeout)
		defer timeoutCancel()
	}

	return entry.task.Execute(ctx)
}

// sendResult delivers a task result without wedging the worker when nobody
// is reading results.
func (w *worker) sendResult(result Result) {
	select {
	case w.pool.resultQueue <- result:
	case <-w.pool.stopCh:
		// Worker is shutting down, don't block on result delivery
	case <-time.After(100 * time.Millisecond):
		// Result delivery timed out, which is acceptable during shutdown
	}
}

// handleWorkerFault reports a dispatch-loop fault and spawns a replacement
// worker when the pool is still running, maintaining the configured count.
func (p *workerPool) handleWorkerFault(workerID int, recovered interface{}) {
	faultErr := fmt.Errorf("worker fault: %v", recovered)

	p.mu.Lock()
	replacementID := -1
	if p.state == StateRunning {
		replacementID = p.spawnWorkerLocked()
	}
	p.mu.Unlock()

	p.report(Event{
		Kind:     EventWorkerFault,
		Message:  fmt.Sprintf("dispatch loop faulted: %v", recovered),
		WorkerID: workerID,
		Err:      faultErr,
		Time:     time.Now(),
	})
	if replacementID >= 0 {
		p.report(Event{
			Kind:     EventWorkerReplaced,
			Message:  fmt.Sprintf("worker %d replaced by worker %d", workerID, replacementID),
			WorkerID: replacementID,
			Time:     time.Now(),
		})
	}
}
