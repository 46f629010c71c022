// Package kerneltest runs the shared correctness checks against one kernel.
package kerneltest

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/internal/testutil"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// Sizes covers the padding boundaries of every kernel: multiples and
// non-multiples of 3, 4 and 8.
var Sizes = []int{1, 2, 3, 4, 5, 7, 8, 9, 12, 16, 17, 24, 31, 64}

// Reference is the plain triple loop.
func Reference(data []float32, n int) []float32 {
	inf := float32(math.Inf(1))
	out := make([]float32, n*n)
	for i := range n {
		for j := range n {
			v := inf
			for k := range n {
				if z := data[i*n+k] + data[k*n+j]; z < v {
					v = z
				}
			}
			out[i*n+j] = v
		}
	}
	return out
}

func run(t *testing.T, step registry.StepFn, data []float32, n int, cfg registry.Config) []float32 {
	t.Helper()

	snapshot := append([]float32(nil), data...)
	result := make([]float32, n*n)
	for i := range result {
		result[i] = -1
	}

	if err := step(result, data, n, cfg.Normalize()); err != nil {
		t.Fatalf("n=%d: %v", n, err)
	}

	testutil.RequireSliceNearlyEqual(t, data, snapshot, 0)
	return result
}

// Run checks step against Reference and the algebraic properties of one
// min-plus step.
func Run(t *testing.T, step registry.StepFn) {
	t.Helper()

	t.Run("empty", func(t *testing.T) {
		if err := step(nil, nil, 0, registry.Config{}.Normalize()); err != nil {
			t.Fatalf("n=0: %v", err)
		}
	})

	t.Run("single", func(t *testing.T) {
		got := run(t, step, []float32{0.25}, 1, registry.Config{})
		if got[0] != 0.5 {
			t.Fatalf("got %v, want 0.5", got[0])
		}
	})

	t.Run("known3x3", func(t *testing.T) {
		data := []float32{0, 8, 2, 1, 0, 9, 4, 5, 0}
		want := []float32{0, 7, 2, 1, 0, 3, 4, 5, 0}
		got := run(t, step, data, 3, registry.Config{})
		testutil.RequireSliceNearlyEqual(t, got, want, 0)
	})

	t.Run("random", func(t *testing.T) {
		for _, n := range Sizes {
			data := testutil.RandomMatrix(int64(n), n)
			got := run(t, step, data, n, registry.Config{})
			testutil.RequireSliceNearlyEqual(t, got, Reference(data, n), testutil.Tolerance)
		}
	})

	t.Run("missingEdges", func(t *testing.T) {
		for _, n := range []int{5, 9, 20} {
			data := testutil.WithMissingEdges(testutil.RandomMatrix(int64(100+n), n), n, 3)
			got := run(t, step, data, n, registry.Config{})
			testutil.RequireSliceNearlyEqual(t, got, Reference(data, n), testutil.Tolerance)
		}
	})

	t.Run("allInf", func(t *testing.T) {
		for _, n := range []int{1, 6, 11} {
			got := run(t, step, testutil.Filled(n, float32(math.Inf(1))), n, registry.Config{})
			testutil.RequireAllInf(t, got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		for _, n := range []int{7, 13, 40} {
			got := run(t, step, testutil.RandomSymmetric(int64(n), n), n, registry.Config{})
			testutil.RequireSymmetric(t, got, n)
		}
	})

	t.Run("singleWorker", func(t *testing.T) {
		n := 19
		data := testutil.RandomMatrix(19, n)
		got := run(t, step, data, n, registry.Config{Workers: 1})
		testutil.RequireSliceNearlyEqual(t, got, Reference(data, n), testutil.Tolerance)
	})
}

// RunScratchLimit checks that a kernel reports a scratch budget it cannot
// fit into as scratch.ErrAllocation.
func RunScratchLimit(t *testing.T, step registry.StepFn) {
	t.Helper()

	n := 16
	data := testutil.RandomMatrix(1, n)
	result := make([]float32, n*n)

	err := step(result, data, n, registry.Config{ScratchLimit: 16}.Normalize())
	if !errors.Is(err, scratch.ErrAllocation) {
		t.Fatalf("err = %v, want scratch.ErrAllocation", err)
	}
}
