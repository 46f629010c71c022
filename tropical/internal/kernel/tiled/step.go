// Package tiled computes a 3×3 block of output cells per pass over the
// reduction, so each loaded operand vector feeds three accumulators.
package tiled

import (
	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/pack"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// TileSize is the edge of the output register tile.
const TileSize = 3

// Step computes result = data ⊗ data. The packed operands get +Inf rows up
// to a multiple of TileSize; cells that fall on those rows are computed and
// dropped.
func Step(result, data []float32, n int, cfg registry.Config) error {
	if n == 0 {
		return nil
	}

	blocks := (n + TileSize - 1) / TileSize

	ar := scratch.NewArena(cfg.ScratchLimit)
	defer ar.Release()

	rows, cols, perRow, err := pack.Vectors(ar, data, n, blocks*TileSize, cfg.Workers)
	if err != nil {
		return err
	}

	parallel.For(cfg.Workers, blocks, func(ib int) {
		base := ib * TileSize * perRow
		d0 := rows[base : base+perRow]
		d1 := rows[base+perRow : base+2*perRow]
		d2 := rows[base+2*perRow : base+3*perRow]

		for jb := range blocks {
			cbase := jb * TileSize * perRow
			t0 := cols[cbase : cbase+perRow]
			t1 := cols[cbase+perRow : cbase+2*perRow]
			t2 := cols[cbase+2*perRow : cbase+3*perRow]

			var acc [TileSize * TileSize]lanes.F32x8
			for a := range acc {
				acc[a] = lanes.Inf()
			}

			for c := range perRow {
				x0, x1, x2 := d0[c], d1[c], d2[c]
				y0, y1, y2 := t0[c], t1[c], t2[c]
				acc[0] = lanes.MinAdd(acc[0], x0, y0)
				acc[1] = lanes.MinAdd(acc[1], x0, y1)
				acc[2] = lanes.MinAdd(acc[2], x0, y2)
				acc[3] = lanes.MinAdd(acc[3], x1, y0)
				acc[4] = lanes.MinAdd(acc[4], x1, y1)
				acc[5] = lanes.MinAdd(acc[5], x1, y2)
				acc[6] = lanes.MinAdd(acc[6], x2, y0)
				acc[7] = lanes.MinAdd(acc[7], x2, y1)
				acc[8] = lanes.MinAdd(acc[8], x2, y2)
			}

			for bi := range TileSize {
				i := ib*TileSize + bi
				if i >= n {
					break
				}
				for bj := range TileSize {
					j := jb*TileSize + bj
					if j >= n {
						break
					}
					result[i*n+j] = lanes.HorizontalMin(acc[bi*TileSize+bj])
				}
			}
		}
	})

	return nil
}
