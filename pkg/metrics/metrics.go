// Package metrics provides Prometheus instrumentation for taskpool components.
package metrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace overrides it.
const DefaultNamespace = "taskpool"

// Registry holds all metric instances for taskpool components.
type Registry struct {
	// Worker Pool Metrics
	WorkerPoolSize    *prometheus.GaugeVec
	WorkerPoolAlive   *prometheus.GaugeVec
	WorkerPoolActive  *prometheus.GaugeVec
	WorkerPoolQueued  *prometheus.GaugeVec
	TasksSubmitted    *prometheus.CounterVec
	TasksCompleted    *prometheus.CounterVec
	TasksPanicked     *prometheus.CounterVec
	SubmitErrors      *prometheus.CounterVec
	TaskDuration      *prometheus.HistogramVec
	TaskQueueWaitTime *prometheus.HistogramVec

	// Scheduler Metrics
	SchedulerFired   *prometheus.CounterVec
	SchedulerDropped *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by taskpool components.
var DefaultRegistry *Registry

func init() {
	r, err := NewRegistry(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	DefaultRegistry = r
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
// Collectors already registered on reg with the same descriptors are reused.
func NewRegistry(reg prometheus.Registerer) (*Registry, error) {
	return newRegistry(reg, DefaultNamespace)
}

// NewRegistryFromConfig creates a registry honoring cfg.Registry and cfg.Namespace.
// Labels in cfg are attached to every series as constant labels. It fails when
// reg already holds the same metric names with a different set of label names.
func NewRegistryFromConfig(cfg Config) (*Registry, error) {
	cfg = cfg.withDefaults()
	reg := cfg.Registry
	if len(cfg.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(cfg.Labels, reg)
	}
	return newRegistry(reg, cfg.Namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) (*Registry, error) {
	b := &builder{reg: reg}

	r := &Registry{
		// Worker Pool Metrics
		WorkerPoolSize: b.gaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Configured number of workers",
			},
			[]string{"pool_name"},
		),

		WorkerPoolAlive: b.gaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "alive_workers",
				Help:      "Number of worker goroutines currently running",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: b.gaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: b.gaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting in the queue",
			},
			[]string{"pool_name"},
		),

		TasksSubmitted: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted by the pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that returned normally",
			},
			[]string{"pool_name"},
		),

		TasksPanicked: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks that panicked",
			},
			[]string{"pool_name"},
		),

		SubmitErrors: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "submit_errors_total",
				Help:      "Total number of rejected submissions",
			},
			[]string{"pool_name", "kind"},
		),

		TaskDuration: b.histogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		TaskQueueWaitTime: b.histogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "task_queue_wait_seconds",
				Help:      "Time tasks spent queued before a worker picked them up",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		// Scheduler Metrics
		SchedulerFired: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "fired_total",
				Help:      "Total number of schedule firings submitted to a pool",
			},
			[]string{"scheduler_name", "entry"},
		),

		SchedulerDropped: b.counterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "dropped_total",
				Help:      "Total number of schedule firings the pool rejected",
			},
			[]string{"scheduler_name", "entry"},
		),
	}
	if b.err != nil {
		b.rollback()
		return nil, b.err
	}
	return r, nil
}

// builder registers collectors one by one and keeps the first failure.
type builder struct {
	reg   prometheus.Registerer
	added []prometheus.Collector
	err   error
}

func (b *builder) gaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	return add(b, prometheus.NewGaugeVec(opts, labels))
}

func (b *builder) counterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	return add(b, prometheus.NewCounterVec(opts, labels))
}

func (b *builder) histogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	return add(b, prometheus.NewHistogramVec(opts, labels))
}

// rollback unregisters the collectors this builder added, leaving reused
// ones in place.
func (b *builder) rollback() {
	for _, c := range b.added {
		b.reg.Unregister(c)
	}
	b.added = nil
}

// add registers c, or returns the collector already registered under the
// same descriptor.
func add[C prometheus.Collector](b *builder, c C) C {
	var zero C
	if b.err != nil {
		return zero
	}

	err := b.reg.Register(c)
	if err == nil {
		b.added = append(b.added, c)
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	b.err = fmt.Errorf("metrics: %w", err)
	return zero
}

var (
	registriesMu sync.Mutex
	registries   = map[registryKey]*Registry{}
)

// For returns the Registry for cfg, creating it on first use. Components
// sharing a Prometheus registerer share collectors instead of registering
// duplicates. Two label sets with different label names cannot share a
// registerer; For reports that as an error.
func For(cfg Config) (*Registry, error) {
	cfg = cfg.withDefaults()
	if cfg.isDefault() {
		return DefaultRegistry, nil
	}

	key := cfg.key()

	registriesMu.Lock()
	defer registriesMu.Unlock()

	if r, ok := registries[key]; ok {
		return r, nil
	}
	r, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	registries[key] = r
	return r, nil
}
