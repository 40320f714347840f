package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
	"github.com/vnykmshr/gosync/pkg/common/validation"
)

// Sentinel errors returned by pool operations, aliased here so callers
// can match them without importing the errors package.
var (
	ErrPoolClosed = gserrors.ErrPoolClosed
	ErrRejected   = gserrors.ErrRejected
	ErrTimeout    = gserrors.ErrTimeout
	ErrCanceled   = gserrors.ErrCanceled
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// TaskID identifies the submission that produced this result
	TaskID uuid.UUID

	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// SubmitPolicy selects how Submit behaves when a bounded queue is full.
type SubmitPolicy int

const (
	// BlockOnFull blocks the submitter until queue space frees
	// (backpressure). This is the default policy.
	BlockOnFull SubmitPolicy = iota

	// RejectOnFull fails the submission immediately with ErrRejected.
	RejectOnFull
)

// String returns the policy name.
func (p SubmitPolicy) String() string {
	switch p {
	case BlockOnFull:
		return "block"
	case RejectOnFull:
		return "reject"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// State is the pool lifecycle state. Transitions are one-way:
// Created -> Running -> ShuttingDown -> Stopped.
type State int32

const (
	// StateCreated means the pool exists but no workers run yet.
	StateCreated State = iota

	// StateRunning means workers are consuming the queue.
	StateRunning

	// StateShuttingDown means the pool no longer accepts submissions.
	StateShuttingDown

	// StateStopped means all workers have terminated.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Pool represents a worker pool that can execute tasks concurrently.
type Pool interface {
	// Start spawns the configured number of workers. It fails unless the
	// pool is in the Created state; a pool is started at most once.
	Start() error

	// Submit adds a task to the pool for execution.
	// Returns ErrPoolClosed after shutdown has begun, and ErrRejected if
	// the bounded queue is full under the RejectOnFull policy.
	Submit(task Task) error

	// SubmitWithTimeout submits a task with a timeout for queuing.
	// If the task cannot be queued within the timeout, it returns ErrTimeout.
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// SubmitWithContext submits a task with a context for cancellation.
	// The context applies both to the queuing operation and, later, to the
	// task's execution.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns a channel of task results.
	// The channel is closed when the pool is stopped.
	Results() <-chan Result

	// Shutdown initiates a graceful (draining) shutdown: no new tasks are
	// accepted, all queued and in-flight tasks complete, then workers stop.
	// Returns a channel that closes when shutdown is complete.
	Shutdown() <-chan struct{}

	// ShutdownNow initiates an immediate shutdown: no new tasks are
	// accepted, in-flight tasks are cooperatively canceled, workers stop
	// after their current task, and never-started queued tasks are reported
	// as discarded. Returns a channel that closes when shutdown is complete.
	ShutdownNow() <-chan struct{}

	// State returns the pool's lifecycle state.
	State() State

	// Size returns the configured number of workers.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of tasks accepted by the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks executed by the pool.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the maximum number of tasks that can be queued.
	// If 0, the queue is unbounded (grows freely).
	QueueSize int

	// Policy selects the overflow behavior of a bounded queue:
	// BlockOnFull (default) or RejectOnFull.
	Policy SubmitPolicy

	// TaskTimeout is the default timeout for individual task execution.
	// Zero means no timeout.
	TaskTimeout time.Duration

	// BufferedResults determines if results should be buffered.
	// If true, results are sent to a buffered channel to prevent blocking.
	// Buffer size equals worker count plus queue size.
	BufferedResults bool

	// OnEvent receives pool events: task failures, discarded tasks, worker
	// faults and replacements. If nil, worker faults are logged and other
	// events are dropped (task failures still reach the Results channel).
	OnEvent func(Event)

	// PanicHandler is called when a task panics during execution.
	// If nil, the panic is recovered and reported as the task's error.
	PanicHandler func(task Task, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution. It runs on the
	// worker's dispatch loop: a panic here is a worker fault, not a task
	// failure.
	OnTaskStart func(workerID int, task Task)

	// OnTaskComplete is called after a task completes (success or failure).
	// It runs on the worker's dispatch loop, like OnTaskStart.
	OnTaskComplete func(workerID int, result Result)
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	queue       *taskQueue
	resultQueue chan Result

	mu    sync.RWMutex
	state State

	// taskCtx is canceled by ShutdownNow for cooperative cancellation of
	// in-flight tasks.
	taskCtx    context.Context
	taskCancel context.CancelFunc

	// stopCh stops workers after their current task (immediate shutdown).
	// shutdownCh marks that any shutdown has begun.
	stopCh       chan struct{}
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	workerWg     sync.WaitGroup
	nextWorkerID int64 // atomic

	activeWorkers  int32 // atomic
	totalSubmitted int64 // atomic
	totalCompleted int64 // atomic
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a worker pool with the specified worker count and queue size.
// It panics on invalid arguments; use NewSafe to get an error instead.
func New(workerCount, queueSize int) Pool {
	pool, err := NewSafe(workerCount, queueSize)
	if err != nil {
		panic(err)
	}
	return pool
}

// NewSafe creates a worker pool with the specified worker count and queue
// size (0 = unbounded), returning an error on invalid configuration.
func NewSafe(workerCount, queueSize int) (Pool, error) {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a worker pool with the specified configuration.
// The pool is in the Created state; call Start to spawn workers.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "workerCount", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("workerpool", "queueSize", config.QueueSize); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("workerpool", "taskTimeout", int64(config.TaskTimeout)); err != nil {
		return nil, err
	}

	var resultQueue chan Result
	if config.BufferedResults {
		resultQueue = make(chan Result, config.WorkerCount+config.QueueSize)
	} else {
		resultQueue = make(chan Result)
	}

	taskCtx, taskCancel := context.WithCancel(context.Background())

	return &workerPool{
		config:      config,
		queue:       newTaskQueue(config.QueueSize),
		resultQueue: resultQueue,
		state:       StateCreated,
		taskCtx:     taskCtx,
		taskCancel:  taskCancel,
		stopCh:      make(chan struct{}),
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
	}, nil
}
