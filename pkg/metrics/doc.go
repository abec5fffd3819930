// Package metrics provides Prometheus instrumentation for taskpool components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
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
//	pool, err := workerpool.NewWithConfigAndMetrics(
//		workerpool.Config{WorkerCount: 4},
//		"custom_pool",
//		metrics.Config{Enabled: true, Registry: registry},
//	)
//
// Components on one registerer share collectors. Their Labels may differ in
// value but not in name; a mismatched set is returned as an error.
//
// # Available Metrics
//
// Worker pools (label pool_name):
//
//   - taskpool_workerpool_size: Configured number of workers
//   - taskpool_workerpool_alive_workers: Worker goroutines currently running
//   - taskpool_workerpool_active_workers: Workers currently executing a task
//   - taskpool_workerpool_queued_tasks: Tasks waiting in the queue
//   - taskpool_workerpool_tasks_submitted_total
//   - taskpool_workerpool_tasks_completed_total
//   - taskpool_workerpool_tasks_panicked_total
//   - taskpool_workerpool_submit_errors_total (extra label kind)
//   - taskpool_workerpool_task_duration_seconds
//   - taskpool_workerpool_task_queue_wait_seconds
//
// Schedulers (labels scheduler_name, entry):
//
//   - taskpool_scheduler_fired_total
//   - taskpool_scheduler_dropped_total
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	pool.DisableMetrics()
//	pool.EnableMetrics(config)
//	enabled := pool.MetricsEnabled()
package metrics
