// Package linear reads both operands sequentially by working against a
// transposed copy of the input.
package linear

import (
	"math"

	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/pack"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// Step computes result = data ⊗ data. Output rows are independent and are
// computed in parallel.
func Step(result, data []float32, n int, cfg registry.Config) error {
	if n == 0 {
		return nil
	}

	ar := scratch.NewArena(cfg.ScratchLimit)
	defer ar.Release()

	t, err := pack.Transpose(ar, data, n, cfg.Workers)
	if err != nil {
		return err
	}

	inf := float32(math.Inf(1))

	parallel.For(cfg.Workers, n, func(i int) {
		row := data[i*n : (i+1)*n]
		out := result[i*n : (i+1)*n]
		for j := range out {
			col := t[j*n : (j+1)*n]
			v := inf
			for k, x := range row {
				if z := x + col[k]; z < v {
					v = z
				}
			}
			out[j] = v
		}
	})

	return nil
}
