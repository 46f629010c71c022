// Package parallel runs independent loop iterations on a bounded group of
// goroutines and returns once every iteration has finished.
//
// The join at the end of For is a full barrier: writes made by any iteration
// happen before For returns, so consecutive calls can be used as ordered
// phases without further synchronisation.
package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Workers returns n if positive, otherwise runtime.GOMAXPROCS(0).
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// batchSize picks how many consecutive indices one grab claims so that each
// worker performs several grabs, which evens out uneven iteration costs.
func batchSize(n, workers int) int {
	b := n / (workers * 4)
	if b < 1 {
		return 1
	}
	return b
}

// For calls fn(i) for every i in [0, n) using at most workers goroutines.
// Iterations are claimed in batches through an atomic counter.
func For(workers, n int, fn func(i int)) {
	ForRange(workers, n, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ForRange calls fn on disjoint half-open ranges that together cover [0, n).
func ForRange(workers, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers = min(Workers(workers), n)
	if workers == 1 {
		fn(0, n)
		return
	}

	batch := batchSize(n, workers)

	var next atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)

	for range workers {
		g.Go(func() error {
			for {
				start := int(next.Add(int64(batch))) - batch
				if start >= n {
					return nil
				}
				fn(start, min(start+batch, n))
			}
		})
	}

	// Iterations cannot fail; Wait is the join.
	_ = g.Wait()
}
