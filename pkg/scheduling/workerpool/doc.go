/*
Package workerpool provides a fixed-size worker pool for fire-and-forget tasks.

A pool starts a fixed number of worker goroutines at construction. Workers
compete for tasks on a shared unbounded queue and execute each one
synchronously. Closing the pool stops submissions, lets the workers drain the
queue and joins every worker before returning.

Basic usage:

	pool, err := workerpool.New(4)
	if err != nil {
		return err
	}
	defer pool.Close()

	err = pool.Submit(func() {
		// Do work
	})
	if err != nil {
		log.Printf("Failed to submit: %v", err)
	}

Tasks:

A Task is a plain func(). It takes no arguments and returns nothing; the pool
keeps no per-task result. Tasks that need to report back should close over a
channel, a counter or a logger of their own.

Submission:

Submit never blocks. The queue is unbounded, so a producer that outruns the
workers grows memory until it slows down. Submit fails only when the task is
nil or the pool is closing or closed; both cases return an *Error of kind
InternalError:

	if err := pool.Submit(task); errors.Is(err, workerpool.ErrInternal) {
		// pool is shutting down, drop or reroute the task
	}

Shutdown:

Close is synchronous and idempotent. Every task submitted before Close was
called has finished running when Close returns. Calls after the first wait for
the first to complete and return nil. Shutdown runs Close in the background
and returns a channel that is closed when it is done:

	<-pool.Shutdown()

A pool that becomes unreachable without being closed is closed by a finalizer,
but relying on that delays shutdown until the next garbage collection. Close
must not be called from inside a task, which would wait on its own worker.

Panics:

A panicking task does not take its worker down. The panic is recovered, logged
at error level with its stack, counted in TotalPanicked and passed to
Config.PanicHandler if one is set. The number of workers stays constant for
the lifetime of the pool.

Configuration:

	config := workerpool.Config{
		WorkerCount: 8,
		Name:        "thumbnails",
		Logger:      slog.Default(),
		PanicHandler: func(workerID int, recovered any) {
			log.Printf("worker %d: task panicked: %v", workerID, recovered)
		},
		OnTaskComplete: func(workerID int, elapsed time.Duration) {
			log.Printf("worker %d completed task in %v", workerID, elapsed)
		},
	}
	pool, err := workerpool.NewWithConfig(config)

Logging:

Each worker logs "task started" at debug level and "task finished" with the
elapsed time at info level, tagged with the pool name and a worker-NN name.
Pool start and close are logged at info level.

Errors:

Constructors return an *Error of kind SpawnError when WorkerCount is not
positive; it wraps a validation error that matches
errors.ErrInvalidConfiguration. No goroutines are started in that case.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics return a MetricsPool that records
Prometheus series for pool size, alive and active workers, queue depth,
submissions, completions, panics, queue wait and execution time.

Thread Safety:

All pool operations are safe for concurrent use from multiple goroutines.
*/
package workerpool
