/*
Package scheduling groups the task execution primitives of taskpool:

  - workerpool: fixed set of named workers draining an unbounded FIFO queue
  - scheduler: cron schedules whose firings are submitted to a worker pool

Worker Pool:

	pool, err := workerpool.New(4)
	if err != nil {
		return err
	}
	defer pool.Close()

	pool.Submit(func() {
		// Do work
	})

Close blocks until every queued task has run and all workers have exited.

Cron Scheduling:

	c := scheduler.NewCron(pool)
	c.Add("digest", "0 9 * * MON-FRI", sendDigest) // Weekdays at 9 AM
	c.Start()
	defer func() { <-c.Stop() }()

Both packages are safe for concurrent use.
*/
package scheduling
