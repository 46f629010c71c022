package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkers(t *testing.T) {
	if got := Workers(3); got != 3 {
		t.Fatalf("Workers(3) = %d", got)
	}

	if got := Workers(0); got != runtime.GOMAXPROCS(0) {
		t.Fatalf("Workers(0) = %d, want GOMAXPROCS", got)
	}
}

func TestForVisitsEachIndexOnce(t *testing.T) {
	for _, tc := range []struct{ workers, n int }{
		{1, 10}, {4, 1}, {4, 100}, {8, 1000}, {0, 257}, {64, 3},
	} {
		counts := make([]int32, tc.n)

		For(tc.workers, tc.n, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})

		for i, c := range counts {
			if c != 1 {
				t.Fatalf("workers=%d n=%d: index %d visited %d times", tc.workers, tc.n, i, c)
			}
		}
	}
}

func TestForRangeDisjoint(t *testing.T) {
	const n = 1001
	var covered atomic.Int64

	ForRange(6, n, func(start, end int) {
		if start < 0 || end > n || start >= end {
			t.Errorf("bad range [%d, %d)", start, end)
		}
		covered.Add(int64(end - start))
	})

	if covered.Load() != n {
		t.Fatalf("covered %d indices, want %d", covered.Load(), n)
	}
}

func TestForZero(t *testing.T) {
	called := false
	For(4, 0, func(int) { called = true })

	if called {
		t.Fatal("fn called for n = 0")
	}
}

// Writes from one For call are visible to the next without extra
// synchronisation.
func TestForIsBarrier(t *testing.T) {
	const n = 512
	buf := make([]int, n)

	for phase := 1; phase <= 5; phase++ {
		For(8, n, func(i int) {
			if buf[(i+1)%n] != phase-1 {
				t.Errorf("phase %d saw stale value at %d", phase, (i+1)%n)
			}
		})
		For(8, n, func(i int) { buf[i] = phase })
	}
}
