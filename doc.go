/*
Package taskpool provides a fixed-size worker pool for Go applications, with
the queue, metrics and cron scheduling that surround it.

Task Scheduling (pkg/scheduling):
  - workerpool: Named workers draining an unbounded FIFO queue
  - scheduler: Cron schedules that submit into a pool

Streaming (pkg/streaming):
  - channel: Unbounded multi-consumer channel backing the pool

Metrics (pkg/metrics):
  - Prometheus gauges, counters and histograms for pools and schedulers

Example usage:

	import "github.com/vnykmshr/taskpool/pkg/scheduling/workerpool"

	pool, err := workerpool.New(5) // 5 workers
	if err != nil {
		return err
	}
	defer pool.Close()

	for _, job := range jobs {
		pool.Submit(func() { process(job) })
	}

Close stops intake, runs every queued task and joins all workers before it
returns. A task that panics is recovered and logged; its worker carries on.

The cmd/taskpool command runs a demonstration workload:

	taskpool run --workers 10 --tasks 100 --metrics-addr :9090

See individual package documentation for detailed usage examples.
*/
package taskpool
