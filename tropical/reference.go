package tropical

import (
	"fmt"
	"math"
)

// Reference computes the min-plus product with a plain triple loop. It
// shares no code with the kernels and serves as the correctness oracle.
func Reference(result, data []float32, n int) error {
	if err := validate(result, data, n); err != nil {
		return err
	}

	inf := float32(math.Inf(1))
	for i := range n {
		for j := range n {
			v := inf
			for k := range n {
				z := data[i*n+k] + data[k*n+j]
				if z < v {
					v = z
				}
			}
			result[i*n+j] = v
		}
	}

	return nil
}

// DefaultTolerance is the absolute per-element tolerance between a kernel
// and Reference.
const DefaultTolerance = 1e-6

// Mismatch describes the first element where two results disagree.
type Mismatch struct {
	Index int
	Got   float32
	Want  float32
}

// Error formats the mismatch as a diagnostic line.
func (m *Mismatch) Error() string {
	return fmt.Sprintf("step produced %v at index %d, while the reference produced %v",
		m.Got, m.Index, m.Want)
}

// Compare returns the first index where got and want differ by more than
// tol, or nil if they agree. Equal infinities agree. A length difference is
// reported at the first index past the shorter slice.
func Compare(got, want []float32, tol float64) *Mismatch {
	n := min(len(got), len(want))
	for i := range n {
		g, w := got[i], want[i]
		if g == w {
			continue
		}
		if d := math.Abs(float64(g) - float64(w)); !(d <= tol) {
			return &Mismatch{Index: i, Got: g, Want: w}
		}
	}

	if len(got) != len(want) {
		m := &Mismatch{Index: n, Got: float32(math.NaN()), Want: float32(math.NaN())}
		if n < len(got) {
			m.Got = got[n]
		}
		if n < len(want) {
			m.Want = want[n]
		}
		return m
	}

	return nil
}
