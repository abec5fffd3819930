package workerpool

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"github.com/vnykmshr/taskpool/pkg/streaming/channel"
)

// Task is a unit of work executed exactly once by one worker.
// Tasks take no arguments and return nothing; the pool reports no outcome.
type Task func()

// Pool represents a fixed set of workers executing submitted tasks.
type Pool interface {
	// Submit queues a task for the first free worker. It never blocks.
	// Returns an InternalError once the pool is closing or closed.
	Submit(task Task) error

	// Close stops accepting tasks, waits until every queued task has run
	// and joins all workers. Safe to call more than once; later calls wait
	// for the first to finish and return nil. Must not be called from a task.
	Close() error

	// Shutdown runs Close in the background. The returned channel is closed
	// once Close has returned.
	Shutdown() <-chan struct{}

	// IsClosed reports whether Close has begun.
	IsClosed() bool

	// Size returns the number of workers the pool was created with.
	Size() int

	// AliveWorkers returns the number of worker goroutines currently running.
	AliveWorkers() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// TotalSubmitted returns the total number of tasks accepted by the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks that returned normally.
	TotalCompleted() int64

	// TotalPanicked returns the total number of tasks that panicked.
	TotalPanicked() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// Name identifies the pool in log records. Defaults to "workerpool".
	Name string

	// Logger receives lifecycle and per-task records. Defaults to slog.Default().
	Logger *slog.Logger

	// PanicHandler is called with the recovered value when a task panics.
	// The worker survives either way.
	PanicHandler func(workerID int, recovered any)

	// OnWorkerStart is called when a worker starts, before New returns.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int)

	// OnTaskComplete is called after a task returns or panics.
	OnTaskComplete func(workerID int, elapsed time.Duration)
}

const defaultName = "workerpool"

// workerPool implements the Pool interface.
type workerPool struct {
	config Config
	logger *slog.Logger

	// Core pool state
	tx      *channel.Sender[Task]
	rx      *channel.Receiver[Task]
	workers []*worker

	closing   atomic.Bool
	closeOnce sync.Once

	// State tracking
	alive          atomic.Int32
	active         atomic.Int32
	totalSubmitted atomic.Int64
	totalCompleted atomic.Int64
	totalPanicked  atomic.Int64
}

// handle is what New hands out. Workers only reference the inner
// *workerPool, so an abandoned handle becomes unreachable and its finalizer
// closes the pool.
type handle struct {
	*workerPool
}

// New creates a worker pool with size workers.
func New(size int) (Pool, error) {
	return NewWithConfig(Config{WorkerCount: size})
}

// NewWithConfig creates a worker pool with the specified configuration.
// All workers are running when it returns.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", config.WorkerCount); err != nil {
		return nil, spawnError(err)
	}

	if config.Name == "" {
		config.Name = defaultName
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tx, rx := channel.NewUnbounded[Task]()
	p := &workerPool{
		config: config,
		logger: logger.With("pool", config.Name),
		tx:     tx,
		rx:     rx,
	}

	var started sync.WaitGroup
	p.workers = make([]*worker, config.WorkerCount)
	for i := range p.workers {
		p.workers[i] = &worker{
			id:   i,
			name: fmt.Sprintf("worker-%02d", i),
			pool: p,
			done: make(chan struct{}),
		}
		started.Add(1)
		go p.workers[i].run(&started)
	}
	started.Wait()

	p.logger.Info("pool started", "workers", config.WorkerCount)

	h := &handle{workerPool: p}
	runtime.SetFinalizer(h, func(h *handle) {
		if !h.closing.Load() {
			go h.workerPool.Close()
		}
	})
	return h, nil
}
