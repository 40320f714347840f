// Package metrics provides Prometheus instrumentation for gosync components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gosync components.
type Registry struct {
	// Handoff Channel Metrics
	HandoffPuts         *prometheus.CounterVec
	HandoffTakes        *prometheus.CounterVec
	HandoffBlockedPuts  *prometheus.CounterVec
	HandoffBlockedTakes *prometheus.CounterVec
	HandoffTimeouts     *prometheus.CounterVec
	HandoffCancels      *prometheus.CounterVec
	HandoffOccupied     *prometheus.GaugeVec
	HandoffWaitTime     *prometheus.HistogramVec

	// Worker Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksRejected         *prometheus.CounterVec
	TasksDiscarded        *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	WorkerPoolSize        *prometheus.GaugeVec
	WorkerPoolActive      *prometheus.GaugeVec
	WorkerPoolQueued      *prometheus.GaugeVec
	WorkerReplacements    *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gosync components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Handoff Channel Metrics
		HandoffPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "puts_total",
				Help:      "Total number of completed put operations",
			},
			[]string{"channel_name"},
		),

		HandoffTakes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "takes_total",
				Help:      "Total number of completed take operations",
			},
			[]string{"channel_name"},
		),

		HandoffBlockedPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "blocked_puts_total",
				Help:      "Total number of put operations that had to wait",
			},
			[]string{"channel_name"},
		),

		HandoffBlockedTakes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "blocked_takes_total",
				Help:      "Total number of take operations that had to wait",
			},
			[]string{"channel_name"},
		),

		HandoffTimeouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "timeouts_total",
				Help:      "Total number of operations that timed out while waiting",
			},
			[]string{"channel_name", "operation"},
		),

		HandoffCancels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "cancellations_total",
				Help:      "Total number of operations canceled while waiting",
			},
			[]string{"channel_name", "operation"},
		),

		HandoffOccupied: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "occupied",
				Help:      "Whether the handoff slot currently holds a value (0 or 1)",
			},
			[]string{"channel_name"},
		),

		HandoffWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gosync",
				Subsystem: "handoff",
				Name:      "wait_duration_seconds",
				Help:      "Time spent blocked in put and take operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"channel_name", "operation"},
		),

		// Worker Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted by the pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that returned an error or panicked",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions rejected by a full queue",
			},
			[]string{"pool_name"},
		),

		TasksDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "tasks_discarded_total",
				Help:      "Total number of queued tasks discarded by immediate shutdown",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Configured worker count",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing tasks",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting in the queue",
			},
			[]string{"pool_name"},
		),

		WorkerReplacements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gosync",
				Subsystem: "workerpool",
				Name:      "worker_replacements_total",
				Help:      "Total number of workers replaced after a dispatch fault",
			},
			[]string{"pool_name"},
		),
	}
}
