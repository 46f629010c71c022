// Package baseline is the direct triple-loop min-plus kernel.
package baseline

import (
	"math"

	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// Step computes result = data ⊗ data with loops over i, j and k. The
// second operand is read down a column, stride n.
func Step(result, data []float32, n int, _ registry.Config) error {
	inf := float32(math.Inf(1))

	for i := range n {
		row := data[i*n : (i+1)*n]
		for j := range n {
			v := inf
			for k, x := range row {
				if z := x + data[k*n+j]; z < v {
					v = z
				}
			}
			result[i*n+j] = v
		}
	}

	return nil
}
