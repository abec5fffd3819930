package workerpool

import (
	"runtime/debug"
	"sync"
	"time"
)

// worker represents a single worker in the pool.
type worker struct {
	id   int
	name string
	pool *workerPool
	done chan struct{}
}

// run is the main loop for a worker. It returns once the queue is closed
// and drained.
func (w *worker) run(started *sync.WaitGroup) {
	p := w.pool
	defer close(w.done)

	p.alive.Add(1)
	defer p.alive.Add(-1)

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(w.id)
	}
	if p.config.OnWorkerStop != nil {
		defer p.config.OnWorkerStop(w.id)
	}
	started.Done()

	for {
		task, err := p.rx.Receive()
		if err != nil {
			p.logger.Debug("worker stopped", "worker", w.name)
			return
		}
		w.execute(task)
	}
}

// execute runs a single task and reports how long it took.
func (w *worker) execute(task Task) {
	p := w.pool

	p.active.Add(1)
	defer p.active.Add(-1)

	if p.config.OnTaskStart != nil {
		p.config.OnTaskStart(w.id)
	}
	p.logger.Debug("task started", "worker", w.name)

	start := time.Now()
	panicked := w.invoke(task)
	elapsed := time.Since(start)

	if panicked {
		p.totalPanicked.Add(1)
	} else {
		p.totalCompleted.Add(1)
	}
	p.logger.Info("task finished", "worker", w.name, "elapsed", elapsed, "panicked", panicked)

	if p.config.OnTaskComplete != nil {
		p.config.OnTaskComplete(w.id, elapsed)
	}
}

// invoke calls task, converting a panic into a log record so the worker
// keeps serving the queue.
func (w *worker) invoke(task Task) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicked = true
		w.pool.logger.Error("task panicked",
			"worker", w.name,
			"panic", r,
			"stack", string(debug.Stack()),
		)
		if h := w.pool.config.PanicHandler; h != nil {
			h(w.id, r)
		}
	}()

	task()
	return false
}
