// Package zorder is the cache-aware min-plus kernel.
//
// The output is cut into 8×8 tiles visited in Morton order. For one tile the
// row operand holds 8 consecutive rows of the input at reduction index k and
// the column operand holds 8 consecutive columns at k. Adding the row vector
// to the column vector pairs lane b with lane b only; the other 56 pairings
// come from permuted copies (swap by 2, 4 and 6 lanes on the row side, swap
// by 1 on the column side), so 8 vector add/min pairs cover all 64 cells.
// Accumulator s|t, with s in {0,2,4,6} the row swap and t in {0,1} the
// column swap, holds in lane l the cell (l^s, l^t) of the tile.
//
// The reduction is processed in stripes of bounded width. Partial minima
// are kept in a per-tile buffer between stripes; a stripe starts only after
// the previous one has finished on every tile.
package zorder

import (
	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/morton"
	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// accPerTile is the number of accumulator vectors of one 8×8 tile.
const accPerTile = lanes.Width

// Step computes result = data ⊗ data.
func Step(result, data []float32, n int, cfg registry.Config) error {
	if n == 0 {
		return nil
	}

	groups := (n + lanes.Width - 1) / lanes.Width

	ar := scratch.NewArena(cfg.ScratchLimit)
	defer ar.Release()

	rows, cols, err := packGroups(ar, data, n, groups, cfg.Workers)
	if err != nil {
		return err
	}

	tileCount, err := scratch.Size(groups, groups)
	if err != nil {
		return err
	}
	tiles, err := ar.Tiles(tileCount)
	if err != nil {
		return err
	}
	morton.Fill(tiles, groups, groups)

	accSize, err := scratch.Size(len(tiles), accPerTile)
	if err != nil {
		return err
	}
	acc, err := ar.Vectors(accSize)
	if err != nil {
		return err
	}

	width := cfg.StripeWidth
	for begin := 0; begin < n; begin += width {
		end := min(begin+width, n)
		first := begin == 0
		parallel.For(cfg.Workers, len(tiles), func(z int) {
			tile := tiles[z]
			reduceStripe(
				acc[z*accPerTile:(z+1)*accPerTile],
				rows[tile.Row*n+begin:tile.Row*n+end],
				cols[tile.Col*n+begin:tile.Col*n+end],
				first,
			)
		})
	}

	parallel.For(cfg.Workers, len(tiles), func(z int) {
		tile := tiles[z]
		unpack(result, n, tile.Row, tile.Col, acc[z*accPerTile:(z+1)*accPerTile])
	})

	return nil
}

// packGroups lays out the operands as groups×n vectors. rows[g*n+k] lane b
// is data[8g+b][k]; cols[g*n+k] lane b is data[k][8g+b]. Lanes past n-1
// stay +Inf.
func packGroups(ar *scratch.Arena, data []float32, n, groups, workers int) (rows, cols []lanes.F32x8, err error) {
	size, err := scratch.Size(groups, n)
	if err != nil {
		return nil, nil, err
	}
	if rows, err = ar.Vectors(size); err != nil {
		return nil, nil, err
	}
	if cols, err = ar.Vectors(size); err != nil {
		return nil, nil, err
	}

	parallel.For(workers, groups, func(g int) {
		lanesUsed := min(lanes.Width, n-g*lanes.Width)
		for k := range n {
			rv := &rows[g*n+k]
			cv := &cols[g*n+k]
			for b := range lanesUsed {
				j := g*lanes.Width + b
				rv[b] = data[j*n+k]
				cv[b] = data[k*n+j]
			}
		}
	})

	return rows, cols, nil
}

// reduceStripe folds one stripe of k into the tile's accumulators. On the
// first stripe the accumulators start at +Inf, otherwise at the values left
// by the previous stripe.
func reduceStripe(acc, rows, cols []lanes.F32x8, first bool) {
	var v0, v1, v2, v3, v4, v5, v6, v7 lanes.F32x8
	if first {
		inf := lanes.Inf()
		v0, v1, v2, v3, v4, v5, v6, v7 = inf, inf, inf, inf, inf, inf, inf, inf
	} else {
		v0, v1, v2, v3 = acc[0], acc[1], acc[2], acc[3]
		v4, v5, v6, v7 = acc[4], acc[5], acc[6], acc[7]
	}

	for k, a0 := range rows {
		b0 := cols[k]
		a2 := lanes.Swap2(a0)
		a4 := lanes.Swap4(a0)
		a6 := lanes.Swap2(a4)
		b1 := lanes.Swap1(b0)

		v0 = lanes.MinAdd(v0, a0, b0)
		v1 = lanes.MinAdd(v1, a0, b1)
		v2 = lanes.MinAdd(v2, a2, b0)
		v3 = lanes.MinAdd(v3, a2, b1)
		v4 = lanes.MinAdd(v4, a4, b0)
		v5 = lanes.MinAdd(v5, a4, b1)
		v6 = lanes.MinAdd(v6, a6, b0)
		v7 = lanes.MinAdd(v7, a6, b1)
	}

	acc[0], acc[1], acc[2], acc[3] = v0, v1, v2, v3
	acc[4], acc[5], acc[6], acc[7] = v4, v5, v6, v7
}

// unpack scatters the 64 minima of tile (ig, jg) into result. After undoing
// the column swap on the odd accumulators, cell (ib, jb) sits in lane jb of
// accumulator ib^jb.
func unpack(result []float32, n, ig, jg int, acc []lanes.F32x8) {
	var vv [accPerTile]lanes.F32x8
	copy(vv[:], acc)
	for s := 1; s < accPerTile; s += 2 {
		vv[s] = lanes.Swap1(vv[s])
	}

	for ib := range lanes.Width {
		i := ig*lanes.Width + ib
		if i >= n {
			break
		}
		for jb := range lanes.Width {
			j := jg*lanes.Width + jb
			if j >= n {
				break
			}
			result[i*n+j] = vv[ib^jb][jb]
		}
	}
}
