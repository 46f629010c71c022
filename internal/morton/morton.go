// Package morton builds Z-order (Morton order) traversals over a 2-D grid
// of tiles.
package morton

import (
	"cmp"
	"slices"
)

// Tile is one grid cell together with its Morton code.
type Tile struct {
	Code uint64
	Row  int
	Col  int
}

// spread moves the low 32 bits of x to the even bit positions of the result.
// It is the portable equivalent of a parallel bit deposit with mask
// 0x5555555555555555.
func spread(x uint32) uint64 {
	v := uint64(x)
	v = (v | v<<16) & 0x0000ffff0000ffff
	v = (v | v<<8) & 0x00ff00ff00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f0f0f0f0f
	v = (v | v<<2) & 0x3333333333333333
	v = (v | v<<1) & 0x5555555555555555
	return v
}

// Interleave returns the Morton code of (row, col): row bits occupy the even
// positions and col bits the odd positions.
func Interleave(row, col uint32) uint64 {
	return spread(row) | spread(col)<<1
}

// Order returns every (row, col) pair of a rows×cols grid sorted by Morton
// code. Codes are unique, so the order is total.
func Order(rows, cols int) []Tile {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	tiles := make([]Tile, rows*cols)
	Fill(tiles, rows, cols)
	return tiles
}

// Fill writes the Order of a rows×cols grid into dst, which must hold
// exactly rows*cols tiles. Panics if the length differs.
func Fill(dst []Tile, rows, cols int) {
	if rows <= 0 || cols <= 0 {
		rows, cols = 0, 0
	}
	if len(dst) != rows*cols {
		panic("morton: tile slice length mismatch")
	}

	i := 0
	for r := range rows {
		for c := range cols {
			dst[i] = Tile{
				Code: Interleave(uint32(r), uint32(c)),
				Row:  r,
				Col:  c,
			}
			i++
		}
	}

	slices.SortFunc(dst, func(a, b Tile) int {
		return cmp.Compare(a.Code, b.Code)
	})
}
