package benchmark

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/taskpool/internal/testutil"
	"github.com/vnykmshr/taskpool/pkg/scheduling/workerpool"
)

func newBenchPool(b *testing.B, workers int) workerpool.Pool {
	b.Helper()
	pool, err := workerpool.NewWithConfig(workerpool.Config{
		WorkerCount: workers,
		Logger:      testutil.DiscardLogger(),
	})
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	return pool
}

// BenchmarkWorkerPoolSubmit measures task submission performance.
func BenchmarkWorkerPoolSubmit(b *testing.B) {
	workerCounts := []int{2, 4, 8}

	for _, workers := range workerCounts {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := newBenchPool(b, workers)
			defer pool.Close()

			task := func() {}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = pool.Submit(task)
			}
		})
	}
}

// BenchmarkWorkerPoolThroughput measures end-to-end task execution.
func BenchmarkWorkerPoolThroughput(b *testing.B) {
	pool := newBenchPool(b, 4)

	var completed atomic.Int64
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.Submit(func() { completed.Add(1) })
	}
	_ = pool.Close()
	b.StopTimer()

	if completed.Load() != int64(b.N) {
		b.Fatalf("completed %d of %d tasks", completed.Load(), b.N)
	}
}

// BenchmarkWorkerPoolContention measures concurrent submitters.
func BenchmarkWorkerPoolContention(b *testing.B) {
	pool := newBenchPool(b, 4)
	defer pool.Close()

	task := func() {}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = pool.Submit(task)
		}
	})
}

// BenchmarkWorkerPoolWithWork measures tasks that block briefly.
func BenchmarkWorkerPoolWithWork(b *testing.B) {
	workerCounts := []int{4, 16, 64}

	for _, workers := range workerCounts {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := newBenchPool(b, workers)

			var wg sync.WaitGroup
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				wg.Add(1)
				_ = pool.Submit(func() {
					defer wg.Done()
					time.Sleep(10 * time.Microsecond)
				})
			}
			wg.Wait()
			b.StopTimer()
			_ = pool.Close()
		})
	}
}

// BenchmarkWorkerPoolLifecycle measures New followed by Close.
func BenchmarkWorkerPoolLifecycle(b *testing.B) {
	workerCounts := []int{1, 8, 64}

	for _, workers := range workerCounts {
		b.Run(workerLabel(workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				pool := newBenchPool(b, workers)
				_ = pool.Close()
			}
		})
	}
}

// workerLabel returns a readable label for worker counts.
func workerLabel(workers int) string {
	return "workers_" + strconv.Itoa(workers)
}
