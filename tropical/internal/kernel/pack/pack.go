// Package pack builds the padded operand layouts shared by the row-oriented
// kernels. Padding is always +Inf so extra elements never lower a minimum.
package pack

import (
	"math"

	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/parallel"
	"github.com/cwbudde/algo-tropical/internal/scratch"
)

var inf = float32(math.Inf(1))

// RoundUp returns the smallest multiple of width that is >= n.
func RoundUp(n, width int) int {
	return (n + width - 1) / width * width
}

// Stride returns the row stride for rows of n float32 values: a multiple of
// width, widened to whole cache lines when a line holds a multiple of width
// values.
func Stride(n, width int) int {
	line := cpu.DetectFeatures().CacheLineSize / 4
	if line > width && line%width == 0 {
		width = line
	}
	return RoundUp(n, width)
}

// Transpose returns the n×n transpose of data.
func Transpose(ar *scratch.Arena, data []float32, n, workers int) ([]float32, error) {
	size, err := scratch.Size(n, n)
	if err != nil {
		return nil, err
	}
	t, err := ar.Floats(size, 0)
	if err != nil {
		return nil, err
	}

	parallel.For(workers, n, func(j int) {
		col := t[j*n : (j+1)*n]
		for k := range col {
			col[k] = data[k*n+j]
		}
	})

	return t, nil
}

// Rows returns data and its transpose as row-major matrices with rows of
// stride elements (stride >= n). Row i of the first holds row i of data and
// row j of the second holds column j of data; columns n..stride-1 are +Inf.
func Rows(ar *scratch.Arena, data []float32, n, stride, workers int) (rows, cols []float32, err error) {
	size, err := scratch.Size(n, stride)
	if err != nil {
		return nil, nil, err
	}
	if rows, err = ar.Floats(size, inf); err != nil {
		return nil, nil, err
	}
	if cols, err = ar.Floats(size, inf); err != nil {
		return nil, nil, err
	}

	parallel.For(workers, n, func(i int) {
		r := rows[i*stride : i*stride+n]
		c := cols[i*stride : i*stride+n]
		copy(r, data[i*n:(i+1)*n])
		for k := range n {
			c[k] = data[k*n+i]
		}
	})

	return rows, cols, nil
}

// Vectors packs data into height rows of ceil(n/8) 8-lane vectors each.
// Vector c of row i in the first result holds data[i][8c .. 8c+7]; in the
// second it holds column i, that is data[8c .. 8c+7][i]. Rows at or beyond
// n, and lanes past column n-1, are +Inf.
func Vectors(ar *scratch.Arena, data []float32, n, height, workers int) (rows, cols []lanes.F32x8, perRow int, err error) {
	perRow = (n + lanes.Width - 1) / lanes.Width

	size, err := scratch.Size(height, perRow)
	if err != nil {
		return nil, nil, 0, err
	}
	if rows, err = ar.Vectors(size); err != nil {
		return nil, nil, 0, err
	}
	if cols, err = ar.Vectors(size); err != nil {
		return nil, nil, 0, err
	}

	parallel.For(workers, n, func(i int) {
		for c := range perRow {
			rv := &rows[i*perRow+c]
			cv := &cols[i*perRow+c]
			for b := range lanes.Width {
				k := c*lanes.Width + b
				if k >= n {
					break
				}
				rv[b] = data[i*n+k]
				cv[b] = data[k*n+i]
			}
		}
	})

	return rows, cols, perRow, nil
}
