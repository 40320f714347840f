package workerpool

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies pool events delivered to the reporting sink.
type EventKind int

const (
	// EventTaskFailure reports a task that returned an error or panicked.
	// The failure is isolated to that task; the worker keeps running.
	EventTaskFailure EventKind = iota

	// EventWorkerFault reports an unexpected fault in a worker's dispatch
	// loop itself. It is pool-internal and never delivered to submitters.
	EventWorkerFault

	// EventWorkerReplaced reports that a replacement worker was spawned
	// after a fault, restoring the configured worker count.
	EventWorkerReplaced

	// EventTaskDiscarded reports a queued task dropped by ShutdownNow
	// before any worker picked it up.
	EventTaskDiscarded
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventTaskFailure:
		return "task_failure"
	case EventWorkerFault:
		return "worker_fault"
	case EventWorkerReplaced:
		return "worker_replaced"
	case EventTaskDiscarded:
		return "task_discarded"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a pool event record delivered to the configured OnEvent sink.
type Event struct {
	// Kind classifies the event.
	Kind EventKind

	// Message is a human-readable description.
	Message string

	// TaskID identifies the related task, if any (uuid.Nil otherwise).
	TaskID uuid.UUID

	// WorkerID identifies the related worker, if any (-1 otherwise).
	WorkerID int

	// Err is the related error, if any.
	Err error

	// Time is when the event occurred.
	Time time.Time
}

// report delivers an event to the configured sink. Without a sink, worker
// faults and replacements are still logged; task failures already reach the
// caller through the Results channel.
func (p *workerPool) report(event Event) {
	if p.config.OnEvent != nil {
		p.config.OnEvent(event)
		return
	}
	if event.Kind == EventWorkerFault || event.Kind == EventWorkerReplaced {
		log.Printf("workerpool: %s (worker %d): %s", event.Kind, event.WorkerID, event.Message)
	}
}
