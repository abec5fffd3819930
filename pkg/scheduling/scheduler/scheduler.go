package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"github.com/vnykmshr/taskpool/pkg/metrics"
	"github.com/vnykmshr/taskpool/pkg/scheduling/workerpool"
)

var (
	// ErrDuplicateID is returned by Add when the id is already registered.
	ErrDuplicateID = errors.New("scheduler: entry already exists")

	// ErrNotFound is returned for operations on an unknown id.
	ErrNotFound = errors.New("scheduler: entry not found")

	// ErrInvalidExpression wraps the parse error for a rejected cron expression.
	ErrInvalidExpression = errors.New("scheduler: invalid cron expression")
)

// parser accepts both five-field and six-field (leading seconds) expressions
// as well as descriptors such as "@every 1m" and "@daily".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Option configures a Cron.
type Option func(*Cron)

// WithLogger sets the logger used for firing and drop records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cron) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocation sets the time zone expressions are evaluated in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Cron) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithMetrics publishes fired and dropped counts under name.
func WithMetrics(registry *metrics.Registry, name string) Option {
	return func(c *Cron) {
		c.registry = registry
		c.name = name
	}
}

type entry struct {
	id       string
	cronID   cron.EntryID
	expr     string
	schedule cron.Schedule
	task     workerpool.Task

	fired   atomic.Int64
	dropped atomic.Int64
}

// Cron decides when tasks run and hands each firing to a worker pool.
// It never closes the pool it was given.
type Cron struct {
	pool     workerpool.Pool
	cron     *cron.Cron
	logger   *slog.Logger
	location *time.Location
	registry *metrics.Registry
	name     string

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewCron creates a stopped Cron that submits firings to pool.
func NewCron(pool workerpool.Pool, opts ...Option) *Cron {
	c := &Cron{
		pool:     pool,
		logger:   slog.Default(),
		location: time.Local,
		name:     "scheduler",
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("scheduler", c.name)
	c.cron = cron.New(
		cron.WithParser(parser),
		cron.WithLocation(c.location),
		cron.WithLogger(cronLogger{c.logger}),
	)
	return c
}

// Add registers task under id to be submitted to the pool on every firing of expr.
func (c *Cron) Add(id, expr string, task workerpool.Task) error {
	if err := validation.ValidateNotEmpty("scheduler", "id", id); err != nil {
		return err
	}
	if task == nil {
		return validation.ValidateNotNil("scheduler", "task", nil)
	}

	schedule, err := parser.Parse(expr)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidExpression, expr, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}

	e := &entry{id: id, expr: expr, schedule: schedule, task: task}
	e.cronID = c.cron.Schedule(schedule, cron.FuncJob(func() { c.fire(e) }))
	c.entries[id] = e

	c.logger.Debug("entry added", "entry", id, "expr", expr)
	return nil
}

func (c *Cron) fire(e *entry) {
	if err := c.pool.Submit(e.task); err != nil {
		e.dropped.Add(1)
		if c.registry != nil {
			c.registry.SchedulerDropped.WithLabelValues(c.name, e.id).Inc()
		}
		c.logger.Warn("firing dropped", "entry", e.id, "kind", workerpool.KindOf(err).String(), "error", err)
		return
	}

	e.fired.Add(1)
	if c.registry != nil {
		c.registry.SchedulerFired.WithLabelValues(c.name, e.id).Inc()
	}
	c.logger.Debug("entry fired", "entry", e.id)
}

// Remove unregisters id. It reports whether the entry existed.
// A firing already handed to the pool still runs.
func (c *Cron) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return false
	}
	c.cron.Remove(e.cronID)
	delete(c.entries, id)
	return true
}

// Next returns the next time id is due to fire.
func (c *Cron) Next(id string) (time.Time, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.schedule.Next(time.Now().In(c.location)), nil
}

// Entries returns the registered ids in sorted order.
func (c *Cron) Entries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fired returns how many firings of id were accepted by the pool.
func (c *Cron) Fired(id string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[id]; ok {
		return e.fired.Load()
	}
	return 0
}

// Dropped returns how many firings of id the pool rejected.
func (c *Cron) Dropped(id string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[id]; ok {
		return e.dropped.Load()
	}
	return 0
}

// Start begins firing entries in its own goroutine. Calling Start on a
// running Cron is a no-op.
func (c *Cron) Start() {
	c.cron.Start()
}

// Stop halts firing. The returned channel is closed once any in-flight
// submission has returned. The pool is left open.
func (c *Cron) Stop() <-chan struct{} {
	ctx := c.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()
	return done
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
