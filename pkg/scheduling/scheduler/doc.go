/*
Package scheduler fires tasks on cron schedules and hands every firing to a
workerpool.Pool.

The Cron decides when; the pool decides where. A firing the pool rejects,
for example because it is closing, is logged and counted as dropped rather
than retried.

Basic Usage:

	pool, _ := workerpool.New(4)
	defer pool.Close()

	c := scheduler.NewCron(pool)
	c.Add("report", "@every 1m", func() { buildReport() })
	c.Add("cleanup", "0 30 2 * * *", func() { purge() }) // 02:30:00 daily

	c.Start()
	defer func() { <-c.Stop() }()

Expressions:

Both five-field (minute hour dom month dow) and six-field expressions with a
leading seconds field are accepted, along with the descriptors @yearly,
@monthly, @weekly, @daily, @hourly and @every <duration>.

Stop halts firing but leaves the pool open. Stop the Cron before closing the
pool so no firing is dropped during shutdown.
*/
package scheduler
