// Package metrics provides Prometheus instrumentation for gosync components.
//
// This package enables monitoring and observability for gosync's handoff
// channel and worker pool components through Prometheus metrics.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Handoff channel with metrics
//	slot := handoff.NewWithMetrics[int]("pipeline_slot")
//
//	// Worker pool with metrics
//	pool, err := workerpool.NewWithMetrics(5, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	pool, err := workerpool.NewWithConfigAndMetrics(
//		workerpool.Config{WorkerCount: 5, QueueSize: 100},
//		"custom_pool",
//		config,
//	)
//
// # Available Metrics
//
// ## Handoff Channel Metrics
//
//   - gosync_handoff_puts_total: Total number of completed put operations
//   - gosync_handoff_takes_total: Total number of completed take operations
//   - gosync_handoff_blocked_puts_total: Put operations that had to wait
//   - gosync_handoff_blocked_takes_total: Take operations that had to wait
//   - gosync_handoff_timeouts_total: Operations that timed out while waiting
//   - gosync_handoff_cancellations_total: Operations canceled while waiting
//   - gosync_handoff_occupied: Whether the slot currently holds a value
//   - gosync_handoff_wait_duration_seconds: Time spent blocked in put/take
//
// ## Worker Pool Metrics
//
//   - gosync_workerpool_tasks_submitted_total: Tasks accepted by the pool
//   - gosync_workerpool_tasks_completed_total: Tasks completed successfully
//   - gosync_workerpool_tasks_failed_total: Tasks that errored or panicked
//   - gosync_workerpool_tasks_rejected_total: Submissions rejected by a full queue
//   - gosync_workerpool_tasks_discarded_total: Queued tasks discarded by immediate shutdown
//   - gosync_workerpool_task_duration_seconds: Time spent executing tasks
//   - gosync_workerpool_size: Configured worker count
//   - gosync_workerpool_active_workers: Workers currently executing tasks
//   - gosync_workerpool_queued_tasks: Tasks waiting in the queue
//   - gosync_workerpool_worker_replacements_total: Workers replaced after a dispatch fault
//
// # Labels
//
//   - channel_name: User-provided name for the handoff channel instance
//   - pool_name: User-provided name for the worker pool instance
//   - operation: "put" or "take" for per-operation handoff metrics
package metrics
