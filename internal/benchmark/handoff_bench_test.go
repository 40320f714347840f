package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/vnykmshr/gosync/pkg/handoff"
)

// BenchmarkHandoffPingPong measures a full put/take round trip between two
// goroutines.
func BenchmarkHandoffPingPong(b *testing.B) {
	h := handoff.New[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx := context.Background()
		for {
			_, err := h.Take(ctx)
			if err != nil {
				return
			}
		}
	}()

	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Put(ctx, i)
	}
	b.StopTimer()

	_ = h.Close()
	<-done
}

// BenchmarkHandoffTryOperations measures the non-blocking fast path.
func BenchmarkHandoffTryOperations(b *testing.B) {
	h := handoff.New[int]()
	defer func() { _ = h.Close() }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.TryPut(i)
		_, _, _ = h.TryTake()
	}
}

// BenchmarkHandoffContention measures put throughput with several
// producers competing for the slot.
func BenchmarkHandoffContention(b *testing.B) {
	h := handoff.New[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx := context.Background()
		for {
			_, err := h.Take(ctx)
			if err != nil {
				return
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_ = h.Put(ctx, 1)
		}
	})
	b.StopTimer()

	_ = h.Close()
	<-done
}

// BenchmarkHandoffTimeoutPath measures the cost of a timed-out wait.
func BenchmarkHandoffTimeoutPath(b *testing.B) {
	h := handoff.New[int]()
	defer func() { _ = h.Close() }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.TakeWithTimeout(time.Microsecond)
	}
}
