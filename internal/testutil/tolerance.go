package testutil

import (
	"fmt"
	"math"
	"testing"
)

// Tolerance is the absolute per-element tolerance used to compare a kernel
// against the reference.
const Tolerance = 1e-6

// diff returns |a-b|, treating equal infinities as identical.
func diff(a, b float32) float64 {
	if a == b {
		return 0
	}
	return math.Abs(float64(a) - float64(b))
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps. Matching infinities are equal.
func RequireSliceNearlyEqual(t testing.TB, got, want []float32, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := diff(got[i], want[i]); !(d <= eps) {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireAllInf fails t unless every element is +Inf.
func RequireAllInf(t testing.TB, data []float32) {
	t.Helper()
	for i, v := range data {
		if !math.IsInf(float64(v), 1) {
			t.Fatalf("index %d: got %v, want +Inf", i, v)
		}
	}
}

// RequireSymmetric fails t unless the n×n matrix m equals its transpose.
func RequireSymmetric(t testing.TB, m []float32, n int) {
	t.Helper()
	for i := range n {
		for j := i + 1; j < n; j++ {
			if m[i*n+j] != m[j*n+i] {
				t.Fatalf("(%d,%d) = %v but (%d,%d) = %v", i, j, m[i*n+j], j, i, m[j*n+i])
			}
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := diff(a[i], b[i]); d > maxDiff || math.IsNaN(d) {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
