// Package lanes provides a fixed 8-lane float32 vector in portable Go.
//
// F32x8 mirrors one 256-bit register. The operations are the subset the
// min-plus kernels need: lane-wise add and min, the three adjacent-chunk
// swaps used by the lane-shuffle tile kernel, and a horizontal minimum.
// Every function takes and returns values so the compiler can keep them in
// registers or on the stack without escaping.
package lanes

import "math"

// Width is the number of float32 lanes in an F32x8.
const Width = 8

// F32x8 holds 8 float32 lanes.
type F32x8 [Width]float32

// Inf returns a vector with every lane set to +Inf.
func Inf() F32x8 {
	inf := float32(math.Inf(1))
	return F32x8{inf, inf, inf, inf, inf, inf, inf, inf}
}

// Broadcast returns a vector with every lane set to x.
func Broadcast(x float32) F32x8 {
	return F32x8{x, x, x, x, x, x, x, x}
}

// Load copies up to Width values from src; missing lanes are +Inf.
func Load(src []float32) F32x8 {
	v := Inf()
	copy(v[:], src)
	return v
}

// Add returns a + b lane by lane.
func Add(a, b F32x8) F32x8 {
	return F32x8{
		a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3],
		a[4] + b[4], a[5] + b[5], a[6] + b[6], a[7] + b[7],
	}
}

// Min returns the lane-wise minimum of a and b. A lane of a is kept unless
// the matching lane of b is strictly smaller.
func Min(a, b F32x8) F32x8 {
	for i := range a {
		if b[i] < a[i] {
			a[i] = b[i]
		}
	}
	return a
}

// MinAdd returns Min(acc, Add(a, b)) without materialising the sum.
func MinAdd(acc, a, b F32x8) F32x8 {
	for i := range acc {
		if s := a[i] + b[i]; s < acc[i] {
			acc[i] = s
		}
	}
	return acc
}

// Swap1 exchanges adjacent lanes: [1 0 3 2 5 4 7 6].
func Swap1(v F32x8) F32x8 {
	return F32x8{v[1], v[0], v[3], v[2], v[5], v[4], v[7], v[6]}
}

// Swap2 exchanges adjacent lane pairs: [2 3 0 1 6 7 4 5].
func Swap2(v F32x8) F32x8 {
	return F32x8{v[2], v[3], v[0], v[1], v[6], v[7], v[4], v[5]}
}

// Swap4 exchanges the two halves: [4 5 6 7 0 1 2 3].
func Swap4(v F32x8) F32x8 {
	return F32x8{v[4], v[5], v[6], v[7], v[0], v[1], v[2], v[3]}
}

// HorizontalMin returns the smallest lane, reducing with the same
// swap/min ladder a register implementation would use.
func HorizontalMin(v F32x8) float32 {
	m1 := Min(v, Swap1(v))
	m2 := Min(m1, Swap2(m1))
	m4 := Min(m2, Swap4(m2))
	return m4[0]
}
