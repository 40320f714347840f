package benchmark

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/gosync/pkg/workerpool"
)

func newRunningPool(b *testing.B, workers, queue int) workerpool.Pool {
	b.Helper()
	pool, err := workerpool.NewSafe(workers, queue)
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	if err := pool.Start(); err != nil {
		b.Fatalf("failed to start pool: %v", err)
	}
	return pool
}

// BenchmarkWorkerPoolSubmit measures task submission performance.
func BenchmarkWorkerPoolSubmit(b *testing.B) {
	workerCounts := []int{2, 4, 8}

	for _, workers := range workerCounts {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := newRunningPool(b, workers, 1000)
			defer func() { <-pool.Shutdown() }()

			// Consume results
			go func() {
				for range pool.Results() {
					_ = struct{}{} // Drain results channel
				}
			}()

			task := workerpool.TaskFunc(func(_ context.Context) error {
				return nil
			})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = pool.Submit(task)
			}
		})
	}
}

// BenchmarkWorkerPoolSubmitWithContext measures context-aware submission.
func BenchmarkWorkerPoolSubmitWithContext(b *testing.B) {
	pool := newRunningPool(b, 4, 1000)
	defer func() { <-pool.Shutdown() }()

	// Consume results
	go func() {
		for range pool.Results() {
			_ = struct{}{} // Drain results channel
		}
	}()

	task := workerpool.TaskFunc(func(_ context.Context) error {
		return nil
	})

	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.SubmitWithContext(ctx, task)
	}
}

// BenchmarkWorkerPoolThroughput measures end-to-end task execution.
func BenchmarkWorkerPoolThroughput(b *testing.B) {
	pool := newRunningPool(b, 4, 100)
	defer func() { <-pool.Shutdown() }()

	var completed int64

	// Result consumer
	go func() {
		for range pool.Results() {
			atomic.AddInt64(&completed, 1)
		}
	}()

	task := workerpool.TaskFunc(func(_ context.Context) error {
		return nil
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.Submit(task)
	}

	// Wait for all tasks to complete
	for atomic.LoadInt64(&completed) < int64(b.N) {
		time.Sleep(time.Microsecond)
	}
}

// BenchmarkWorkerPoolContention measures performance under contention.
func BenchmarkWorkerPoolContention(b *testing.B) {
	pool := newRunningPool(b, 8, 500)
	defer func() { <-pool.Shutdown() }()

	// Consume results
	go func() {
		for range pool.Results() {
			_ = struct{}{} // Drain results channel
		}
	}()

	task := workerpool.TaskFunc(func(_ context.Context) error {
		return nil
	})

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = pool.Submit(task)
		}
	})
}

// BenchmarkWorkerPoolScaling measures performance with different pool sizes.
func BenchmarkWorkerPoolScaling(b *testing.B) {
	scales := []struct {
		workers int
		queue   int
	}{
		{1, 100},
		{2, 100},
		{4, 100},
		{8, 100},
		{4, 1000},
	}

	for _, scale := range scales {
		label := workerLabel(scale.workers) + "/Queue" + strconv.Itoa(scale.queue)

		b.Run(label, func(b *testing.B) {
			pool := newRunningPool(b, scale.workers, scale.queue)
			defer func() { <-pool.Shutdown() }()

			var completed int64

			go func() {
				for range pool.Results() {
					atomic.AddInt64(&completed, 1)
				}
			}()

			task := workerpool.TaskFunc(func(_ context.Context) error {
				return nil
			})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = pool.Submit(task)
			}

			for atomic.LoadInt64(&completed) < int64(b.N) {
				time.Sleep(time.Microsecond)
			}
		})
	}
}

func workerLabel(workers int) string {
	return "Workers" + strconv.Itoa(workers)
}
