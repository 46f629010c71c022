// Package testutil holds helpers shared by the kernel tests.
package testutil

import (
	"math"
	"math/rand"
)

// RandomMatrix returns an n×n row-major matrix with values uniform in
// [0, 1), generated from a fixed seed.
func RandomMatrix(seed int64, n int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n*n)
	for i := range out {
		out[i] = rng.Float32()
	}
	return out
}

// RandomSymmetric returns a seeded symmetric n×n matrix with a zero
// diagonal.
func RandomSymmetric(seed int64, n int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n*n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			v := rng.Float32()
			out[i*n+j] = v
			out[j*n+i] = v
		}
	}
	return out
}

// WithMissingEdges returns a copy of m where roughly one element in every
// stride is replaced by +Inf. The diagonal is left untouched.
func WithMissingEdges(m []float32, n, stride int) []float32 {
	out := append([]float32(nil), m...)
	inf := float32(math.Inf(1))
	for idx := range out {
		if idx%stride == 0 && idx/n != idx%n {
			out[idx] = inf
		}
	}
	return out
}

// Filled returns an n×n matrix with every element set to v.
func Filled(n int, v float32) []float32 {
	out := make([]float32, n*n)
	for i := range out {
		out[i] = v
	}
	return out
}
