package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// Pool Creation Tests
// =============================================================================

func TestPool_Create(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
	})

	if counter.Load() != 1 {
		t.Errorf("counter = %d, want 1", counter.Load())
	}
}

func TestPool_CreateZeroWorkers(t *testing.T) {
	pool := NewPool(0)
	defer pool.Close()

	if pool.workers != runtime.GOMAXPROCS(0) {
		t.Errorf("workers = %d, want %d (GOMAXPROCS)", pool.workers, runtime.GOMAXPROCS(0))
	}
}

func TestPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewPool(-5)
	defer pool.Close()

	if pool.workers != runtime.GOMAXPROCS(0) {
		t.Errorf("workers = %d, want %d (GOMAXPROCS)", pool.workers, runtime.GOMAXPROCS(0))
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestPool_ExecuteAll(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestPool_ExecuteAll_Order(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var mu sync.Mutex
	results := make([]int, 0, 10)

	work := make([]func(), 10)
	for i := range work {
		idx := i
		work[i] = func() {
			mu.Lock()
			results = append(results, idx)
			mu.Unlock()
		}
	}

	pool.ExecuteAll(work)

	// All items should be executed (order may vary due to parallelism)
	if len(results) != 10 {
		t.Errorf("results length = %d, want 10", len(results))
	}

	// Verify all indices are present
	seen := make(map[int]bool)
	for _, v := range results {
		seen[v] = true
	}
	for i := 0; i < 10; i++ {
		if !seen[i] {
			t.Errorf("missing index %d in results", i)
		}
	}
}

func TestPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestPool_ExecuteAll_Single(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var executed atomic.Bool

	pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})

	if !executed.Load() {
		t.Error("single task was not executed")
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestPool_CloseIdempotent(t *testing.T) {
	pool := NewPool(4)

	// Multiple closes should not panic
	pool.Close()
	pool.Close()
	pool.Close()
}

func TestPool_OperationsAfterClose(t *testing.T) {
	pool := NewPool(4)
	pool.Close()

	var executed atomic.Bool

	// Should be a no-op, not panic.
	pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})

	if executed.Load() {
		t.Error("work was executed on closed pool")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		go func() {
			defer wg.Done()

			work := make([]func(), numTasksPerGoroutine)
			for i := range work {
				work[i] = func() {
					counter.Add(1)
				}
			}

			pool.ExecuteAll(work)
		}()
	}

	wg.Wait()

	expected := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != expected {
		t.Errorf("counter = %d, want %d", counter.Load(), expected)
	}
}

func TestPool_WorkStealing(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	// Create uneven work distribution - some tasks are much slower
	var fastCount, slowCount atomic.Int64

	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			// Slow task
			work[i] = func() {
				time.Sleep(10 * time.Millisecond)
				slowCount.Add(1)
			}
		} else {
			// Fast task
			work[i] = func() {
				fastCount.Add(1)
			}
		}
	}

	start := time.Now()
	pool.ExecuteAll(work)
	elapsed := time.Since(start)

	if slowCount.Load() != 10 {
		t.Errorf("slowCount = %d, want 10", slowCount.Load())
	}
	if fastCount.Load() != 90 {
		t.Errorf("fastCount = %d, want 90", fastCount.Load())
	}

	// Work stealing should help complete faster than sequential
	// 10 slow tasks * 10ms = 100ms sequential minimum
	// With 4 workers and work stealing, should be closer to 30-40ms
	t.Logf("Elapsed time: %v (work stealing should help)", elapsed)
}

func TestPool_NoGoroutineLeak(t *testing.T) {
	// Get baseline goroutine count
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	// Create and use pool
	for i := 0; i < 5; i++ {
		pool := NewPool(4)

		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)

		pool.Close()
	}

	// Allow goroutines to clean up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()

	// Allow for some variance (test framework goroutines, etc.)
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Edge Case Tests
// =============================================================================

func TestPool_ManySmallTasks(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 10000

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestPool_SingleWorker(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	var counter atomic.Int64

	work := make([]func(), 50)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != 50 {
		t.Errorf("counter = %d, want 50", counter.Load())
	}
}

func TestPool_ManyWorkers(t *testing.T) {
	pool := NewPool(32)
	defer pool.Close()

	var counter atomic.Int64

	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkPool_ExecuteAll_Small(b *testing.B) {
	pool := NewPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 10)
	for i := range work {
		work[i] = func() {}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		pool.ExecuteAll(work)
	}
}

func BenchmarkPool_ExecuteAll_Medium(b *testing.B) {
	pool := NewPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		pool.ExecuteAll(work)
	}
}

func BenchmarkPool_ExecuteAll_Large(b *testing.B) {
	pool := NewPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 1000)
	for i := range work {
		work[i] = func() {}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		pool.ExecuteAll(work)
	}
}

func BenchmarkPool_vs_Goroutines(b *testing.B) {
	numTasks := 100

	b.Run("Pool", func(b *testing.B) {
		pool := NewPool(runtime.GOMAXPROCS(0))
		defer pool.Close()

		work := make([]func(), numTasks)
		for i := range work {
			work[i] = func() {}
		}

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			pool.ExecuteAll(work)
		}
	})

	b.Run("RawGoroutines", func(b *testing.B) {
		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			var wg sync.WaitGroup
			wg.Add(numTasks)
			for j := 0; j < numTasks; j++ {
				go func() {
					defer wg.Done()
				}()
			}
			wg.Wait()
		}
	})
}

func BenchmarkPool_WithWork(b *testing.B) {
	// Benchmark with actual work to simulate realistic usage
	pool := NewPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {
			// Simulate some work (small computation)
			sum := 0
			for j := 0; j < 1000; j++ {
				sum += j
			}
			_ = sum
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		pool.ExecuteAll(work)
	}
}

func BenchmarkPool_Parallel(b *testing.B) {
	pool := NewPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		work := make([]func(), 10)
		for i := range work {
			work[i] = func() {}
		}

		for pb.Next() {
			pool.ExecuteAll(work)
		}
	})
}
