package workerpool

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/taskpool/pkg/metrics"
)

// MetricsPool wraps a worker Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool
}

var (
	_ Pool                   = (*MetricsPool)(nil)
	_ metrics.Instrumentable = (*MetricsPool)(nil)
)

// NewWithMetrics creates a new worker pool with metrics enabled.
func NewWithMetrics(workerCount int, name string) (*MetricsPool, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	config := metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	}

	return NewWithConfigAndMetrics(Config{WorkerCount: workerCount, Name: name}, name, config)
}

// NewWithConfigAndMetrics creates a new worker pool with custom config and metrics.
// When metricsConfig is disabled the pool is still wrapped, so metrics can be
// enabled later with EnableMetrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (*MetricsPool, error) {
	if config.Name == "" {
		config.Name = name
	}

	// Resolve collectors before any worker starts.
	registry, err := metrics.For(metricsConfig)
	if err != nil {
		return nil, err
	}

	basePool, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	mp := &MetricsPool{
		pool: basePool,
		name: name,
	}
	mp.registry.Store(registry)
	mp.enabled.Store(metricsConfig.Enabled)

	mp.updateMetrics()

	return mp, nil
}

// updateMetrics updates the current state metrics.
func (mp *MetricsPool) updateMetrics() {
	if !mp.enabled.Load() {
		return
	}

	r := mp.registry.Load()
	r.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	r.WorkerPoolAlive.WithLabelValues(mp.name).Set(float64(mp.pool.AliveWorkers()))
	r.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(mp.pool.ActiveWorkers()))
	r.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
}

// Submit wraps task to record queue wait and execution time, then submits
// it to the underlying pool.
func (mp *MetricsPool) Submit(task Task) error {
	if task == nil {
		return mp.recordSubmit(mp.pool.Submit(nil))
	}

	submitTime := time.Now()
	wrapped := func() {
		start := time.Now()
		if mp.enabled.Load() {
			mp.registry.Load().TaskQueueWaitTime.WithLabelValues(mp.name).Observe(start.Sub(submitTime).Seconds())
		}
		mp.updateMetrics()

		returned := false
		// No recover here: a panic continues to the pool's own boundary.
		defer func() {
			if !mp.enabled.Load() {
				return
			}
			r := mp.registry.Load()
			r.TaskDuration.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
			if returned {
				r.TasksCompleted.WithLabelValues(mp.name).Inc()
			} else {
				r.TasksPanicked.WithLabelValues(mp.name).Inc()
			}
		}()

		task()
		returned = true
	}

	return mp.recordSubmit(mp.pool.Submit(wrapped))
}

func (mp *MetricsPool) recordSubmit(err error) error {
	if mp.enabled.Load() {
		r := mp.registry.Load()
		if err != nil {
			r.SubmitErrors.WithLabelValues(mp.name, KindOf(err).String()).Inc()
		} else {
			r.TasksSubmitted.WithLabelValues(mp.name).Inc()
		}
	}
	mp.updateMetrics()
	return err
}

// Close closes the underlying pool and publishes the final gauges.
func (mp *MetricsPool) Close() error {
	err := mp.pool.Close()
	mp.updateMetrics()
	return err
}

// Shutdown initiates graceful shutdown of the pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = mp.Close()
	}()
	return done
}

// IsClosed reports whether Close has begun.
func (mp *MetricsPool) IsClosed() bool {
	return mp.pool.IsClosed()
}

// Size returns the current number of workers.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// AliveWorkers returns the number of running worker goroutines.
func (mp *MetricsPool) AliveWorkers() int {
	return mp.pool.AliveWorkers()
}

// QueueSize returns the current number of queued tasks.
func (mp *MetricsPool) QueueSize() int {
	queueSize := mp.pool.QueueSize()

	if mp.enabled.Load() {
		mp.registry.Load().WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(queueSize))
	}

	return queueSize
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (mp *MetricsPool) ActiveWorkers() int {
	activeWorkers := mp.pool.ActiveWorkers()

	if mp.enabled.Load() {
		mp.registry.Load().WorkerPoolActive.WithLabelValues(mp.name).Set(float64(activeWorkers))
	}

	return activeWorkers
}

// TotalSubmitted returns the total number of tasks submitted.
func (mp *MetricsPool) TotalSubmitted() int64 {
	return mp.pool.TotalSubmitted()
}

// TotalCompleted returns the total number of tasks that returned normally.
func (mp *MetricsPool) TotalCompleted() int64 {
	return mp.pool.TotalCompleted()
}

// TotalPanicked returns the total number of tasks that panicked.
func (mp *MetricsPool) TotalPanicked() int64 {
	return mp.pool.TotalPanicked()
}

// EnableMetrics enables metrics collection. A config whose collectors cannot
// be registered leaves the current registry and enabled state untouched.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		registry, err := metrics.For(config)
		if err != nil {
			return err
		}
		mp.registry.Store(registry)
	}
	mp.enabled.Store(config.Enabled)

	mp.updateMetrics()

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled.Load()
}
