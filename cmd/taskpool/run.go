package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vnykmshr/taskpool/internal/config"
	"github.com/vnykmshr/taskpool/internal/logger"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/metrics"
	"github.com/vnykmshr/taskpool/pkg/scheduling/workerpool"
)

func newRunCmd() (*cobra.Command, error) {
	var v *viper.Viper
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit a batch of sleeping tasks and wait for the pool to drain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}

			log, err := logger.New(c.LoggerConfig())
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, err = runDemo(ctx, c, log.Logger, cmd.OutOrStdout())
			return err
		},
	}
	var err error
	if v, err = config.BindFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding run flags: %w", err)
	}
	return cmd, nil
}

// summary describes a finished run.
type summary struct {
	Workers   int
	Submitted int64
	Completed int64
	Panicked  int64
	Rejected  int
	Elapsed   time.Duration
}

func (s summary) print(w io.Writer) {
	fmt.Fprintf(w, "workers:   %d\n", s.Workers)
	fmt.Fprintf(w, "submitted: %d\n", s.Submitted)
	fmt.Fprintf(w, "completed: %d\n", s.Completed)
	fmt.Fprintf(w, "panicked:  %d\n", s.Panicked)
	if s.Rejected > 0 {
		fmt.Fprintf(w, "rejected:  %d\n", s.Rejected)
	}
	fmt.Fprintf(w, "elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
}

// runDemo submits c.Tasks sleeping tasks, closes the pool and prints a
// summary. Cancelling ctx stops further submissions; tasks already queued
// still run before Close returns.
func runDemo(ctx context.Context, c config.Config, log *slog.Logger, out io.Writer) (summary, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if c.MetricsAddr != "" {
		srv, err := serveMetrics(c.MetricsAddr, reg, log)
		if err != nil {
			return summary{}, err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	pool, err := workerpool.NewWithConfigAndMetrics(
		workerpool.Config{WorkerCount: c.Workers, Name: "demo", Logger: log},
		"demo",
		metrics.Config{Enabled: true, Registry: reg},
	)
	if err != nil {
		return summary{}, err
	}

	start := time.Now()
	rejected := 0
submit:
	for i := 0; i < c.Tasks; i++ {
		select {
		case <-ctx.Done():
			log.Warn("interrupted, no longer submitting", "submitted", i, "requested", c.Tasks)
			break submit
		default:
		}

		d := sleepDuration(c.MinDuration, c.MaxDuration)
		if err := pool.Submit(func() { time.Sleep(d) }); err != nil {
			rejected++
			log.Error("submit failed", "task", i, "error", err)
		}
	}

	if err := pool.Close(); err != nil {
		return summary{}, err
	}

	s := summary{
		Workers:   pool.Size(),
		Submitted: pool.TotalSubmitted(),
		Completed: pool.TotalCompleted(),
		Panicked:  pool.TotalPanicked(),
		Rejected:  rejected,
		Elapsed:   time.Since(start),
	}
	s.print(out)
	return s, nil
}

// sleepDuration picks a duration in [lo, hi).
func sleepDuration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo)
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}

// serveMetrics listens on addr before returning so a bad address fails the run.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, tperrors.NewOperationError("taskpool", "listen", err).WithContext("metrics listener on " + addr)
	}

	srv := &http.Server{
		Handler:           metricsHandler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "error", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
