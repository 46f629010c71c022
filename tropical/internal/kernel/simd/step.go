// Package simd processes the reduction eight lanes at a time.
//
// Rows of the input and rows of its transpose are packed into 8-lane
// vectors padded with +Inf. Lane b of the vector accumulator only ever sees
// reduction indices k ≡ b (mod 8), and a single horizontal minimum combines
// the lanes at the end.
package simd

import (
	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/pack"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// Step computes result = data ⊗ data.
func Step(result, data []float32, n int, cfg registry.Config) error {
	if n == 0 {
		return nil
	}

	ar := scratch.NewArena(cfg.ScratchLimit)
	defer ar.Release()

	rows, cols, perRow, err := pack.Vectors(ar, data, n, n, cfg.Workers)
	if err != nil {
		return err
	}

	parallel.For(cfg.Workers, n, func(i int) {
		row := rows[i*perRow : (i+1)*perRow]
		out := result[i*n : (i+1)*n]
		for j := range out {
			col := cols[j*perRow : (j+1)*perRow]
			acc := lanes.Inf()
			for c, x := range row {
				acc = lanes.MinAdd(acc, x, col[c])
			}
			out[j] = lanes.HorizontalMin(acc)
		}
	})

	return nil
}
