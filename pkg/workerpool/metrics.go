package workerpool

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	gserrors "github.com/vnykmshr/gosync/pkg/common/errors"
	"github.com/vnykmshr/gosync/pkg/metrics"
)

// MetricsPool wraps a worker Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a worker pool with metrics enabled on a dedicated
// registry.
func NewWithMetrics(workerCount int, name string) (Pool, error) {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		WorkerCount: workerCount,
	}, name, config)
}

// NewWithConfigAndMetrics creates a worker pool with custom config and metrics.
// Lifecycle callbacks in config are preserved; the metrics hooks chain onto them.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Pool, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		name:     name,
		registry: registry,
		enabled:  true,
	}

	userTaskComplete := config.OnTaskComplete
	config.OnTaskComplete = func(workerID int, result Result) {
		if mp.enabled {
			registry.TaskExecutionDuration.WithLabelValues(name).Observe(result.Duration.Seconds())
			if result.Error != nil {
				registry.TasksFailed.WithLabelValues(name).Inc()
			} else {
				registry.TasksCompleted.WithLabelValues(name).Inc()
			}
			mp.updateGauges()
		}
		if userTaskComplete != nil {
			userTaskComplete(workerID, result)
		}
	}

	userEvent := config.OnEvent
	config.OnEvent = func(event Event) {
		if mp.enabled {
			switch event.Kind {
			case EventWorkerReplaced:
				registry.WorkerReplacements.WithLabelValues(name).Inc()
			case EventTaskDiscarded:
				registry.TasksDiscarded.WithLabelValues(name).Inc()
			}
		}
		if userEvent != nil {
			userEvent(event)
		}
	}

	basePool, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}
	mp.pool = basePool

	mp.updateGauges()
	return mp, nil
}

// updateGauges refreshes the current state gauges.
func (mp *MetricsPool) updateGauges() {
	if !mp.enabled || mp.pool == nil {
		return
	}

	mp.registry.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	mp.registry.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(mp.pool.ActiveWorkers()))
	mp.registry.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
}

// Start starts the underlying pool.
func (mp *MetricsPool) Start() error {
	err := mp.pool.Start()
	mp.updateGauges()
	return err
}

// Submit adds a task to the pool for execution.
func (mp *MetricsPool) Submit(task Task) error {
	return mp.SubmitWithContext(context.Background(), task)
}

// SubmitWithTimeout submits a task with a timeout for queuing.
func (mp *MetricsPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return mp.SubmitWithContext(ctx, task)
}

// SubmitWithContext submits a task with a context and records submission metrics.
func (mp *MetricsPool) SubmitWithContext(ctx context.Context, task Task) error {
	err := mp.pool.SubmitWithContext(ctx, task)

	if mp.enabled {
		switch {
		case err == nil:
			mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
		case errors.Is(err, gserrors.ErrRejected):
			mp.registry.TasksRejected.WithLabelValues(mp.name).Inc()
		}
		mp.updateGauges()
	}

	return err
}

// Results returns a channel of task results.
func (mp *MetricsPool) Results() <-chan Result {
	return mp.pool.Results()
}

// Shutdown initiates graceful shutdown of the pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	return mp.pool.Shutdown()
}

// ShutdownNow initiates immediate shutdown of the pool.
func (mp *MetricsPool) ShutdownNow() <-chan struct{} {
	return mp.pool.ShutdownNow()
}

// State returns the pool's lifecycle state.
func (mp *MetricsPool) State() State {
	return mp.pool.State()
}

// Size returns the configured number of workers.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// QueueSize returns the current number of queued tasks.
func (mp *MetricsPool) QueueSize() int {
	queueSize := mp.pool.QueueSize()

	if mp.enabled {
		mp.registry.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(queueSize))
	}

	return queueSize
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (mp *MetricsPool) ActiveWorkers() int {
	activeWorkers := mp.pool.ActiveWorkers()

	if mp.enabled {
		mp.registry.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(activeWorkers))
	}

	return activeWorkers
}

// TotalSubmitted returns the total number of tasks submitted.
func (mp *MetricsPool) TotalSubmitted() int64 {
	return mp.pool.TotalSubmitted()
}

// TotalCompleted returns the total number of tasks completed.
func (mp *MetricsPool) TotalCompleted() int64 {
	return mp.pool.TotalCompleted()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}
	mp.enabled = config.Enabled

	if mp.enabled {
		mp.updateGauges()
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
