// Package ilp splits the reduction into four independent running minima so
// consecutive compare chains do not wait on each other.
package ilp

import (
	"math"

	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/pack"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// BlockWidth is the number of independent accumulators.
const BlockWidth = 4

// Step computes result = data ⊗ data. Both operands are packed into
// cache-line aligned rows padded with +Inf to a multiple of BlockWidth, so
// the inner loop has no remainder.
func Step(result, data []float32, n int, cfg registry.Config) error {
	if n == 0 {
		return nil
	}

	stride := pack.Stride(n, BlockWidth)

	ar := scratch.NewArena(cfg.ScratchLimit)
	defer ar.Release()

	rows, cols, err := pack.Rows(ar, data, n, stride, cfg.Workers)
	if err != nil {
		return err
	}

	inf := float32(math.Inf(1))

	parallel.For(cfg.Workers, n, func(i int) {
		row := rows[i*stride : (i+1)*stride]
		out := result[i*n : (i+1)*n]
		for j := range out {
			col := cols[j*stride : (j+1)*stride]
			v0, v1, v2, v3 := inf, inf, inf, inf
			for k := 0; k < stride; k += BlockWidth {
				r := row[k : k+BlockWidth : k+BlockWidth]
				c := col[k : k+BlockWidth : k+BlockWidth]
				if z := r[0] + c[0]; z < v0 {
					v0 = z
				}
				if z := r[1] + c[1]; z < v1 {
					v1 = z
				}
				if z := r[2] + c[2]; z < v2 {
					v2 = z
				}
				if z := r[3] + c[3]; z < v3 {
					v3 = z
				}
			}
			out[j] = min(min(v0, v1), min(v2, v3))
		}
	})

	return nil
}
