package workerpool

import (
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
)

// Submit adds a task to the pool for execution.
func (p *workerPool) Submit(task Task) error {
	if task == nil {
		return &Error{Kind: InternalError, Op: "workerpool.Submit", Err: ErrNilTask}
	}

	if p.closing.Load() {
		return &Error{Kind: InternalError, Op: "workerpool.Submit", Err: tperrors.ErrClosed}
	}

	// Counted before the send so TotalCompleted never overtakes TotalSubmitted.
	p.totalSubmitted.Add(1)
	if err := p.tx.Send(task); err != nil {
		p.totalSubmitted.Add(-1)
		return submitError(err)
	}
	return nil
}

// Close stops accepting tasks and blocks until every worker has drained the
// queue and exited.
func (p *workerPool) Close() error {
	p.closeOnce.Do(func() {
		p.closing.Store(true)
		p.logger.Debug("pool closing", "queued", p.rx.Len())

		_ = p.tx.Close()

		for _, w := range p.workers {
			<-w.done
		}

		p.logger.Info("pool closed",
			"completed", p.totalCompleted.Load(),
			"panicked", p.totalPanicked.Load(),
		)
	})
	return nil
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Close()
	}()
	return done
}

// IsClosed reports whether Close has begun.
func (p *workerPool) IsClosed() bool {
	return p.closing.Load()
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// AliveWorkers returns the number of running worker goroutines.
func (p *workerPool) AliveWorkers() int {
	return int(p.alive.Load())
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(p.active.Load())
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return p.rx.Len()
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return p.totalSubmitted.Load()
}

// TotalCompleted returns the total number of tasks that returned normally.
func (p *workerPool) TotalCompleted() int64 {
	return p.totalCompleted.Load()
}

// TotalPanicked returns the total number of tasks that panicked.
func (p *workerPool) TotalPanicked() int64 {
	return p.totalPanicked.Load()
}
