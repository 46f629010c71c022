package lanes

import (
	"math"
	"testing"
)

var seq = F32x8{0, 1, 2, 3, 4, 5, 6, 7}

func TestSwaps(t *testing.T) {
	tests := []struct {
		name string
		fn   func(F32x8) F32x8
		want F32x8
	}{
		{"swap1", Swap1, F32x8{1, 0, 3, 2, 5, 4, 7, 6}},
		{"swap2", Swap2, F32x8{2, 3, 0, 1, 6, 7, 4, 5}},
		{"swap4", Swap4, F32x8{4, 5, 6, 7, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(seq)
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}

			if back := tt.fn(got); back != seq {
				t.Fatalf("swap is not an involution: %v", back)
			}
		})
	}
}

// The swaps permute lane index i to i XOR width.
func TestSwapIsXor(t *testing.T) {
	for _, w := range []int{1, 2, 4} {
		var got F32x8
		switch w {
		case 1:
			got = Swap1(seq)
		case 2:
			got = Swap2(seq)
		case 4:
			got = Swap4(seq)
		}

		for i := range got {
			if int(got[i]) != i^w {
				t.Fatalf("width %d lane %d = %v, want %d", w, i, got[i], i^w)
			}
		}
	}
}

func TestAddMin(t *testing.T) {
	a := F32x8{1, 2, 3, 4, 5, 6, 7, 8}
	b := Broadcast(1)

	if got, want := Add(a, b), (F32x8{2, 3, 4, 5, 6, 7, 8, 9}); got != want {
		t.Fatalf("Add = %v, want %v", got, want)
	}

	m := Min(a, F32x8{0, 9, 0, 9, 0, 9, 0, 9})
	if want := (F32x8{0, 2, 0, 4, 0, 6, 0, 8}); m != want {
		t.Fatalf("Min = %v, want %v", m, want)
	}

	acc := Inf()
	acc = MinAdd(acc, a, b)
	if acc != Add(a, b) {
		t.Fatalf("MinAdd from Inf = %v, want %v", acc, Add(a, b))
	}
}

func TestInfinityArithmetic(t *testing.T) {
	inf := Inf()
	sum := Add(inf, inf)

	for i, x := range sum {
		if !math.IsInf(float64(x), 1) {
			t.Fatalf("lane %d: Inf+Inf = %v", i, x)
		}
	}

	if got := Min(inf, Broadcast(3)); got != Broadcast(3) {
		t.Fatalf("Min(Inf, 3) = %v", got)
	}
}

func TestLoadPadsWithInf(t *testing.T) {
	v := Load([]float32{1, 2, 3})

	for i := 0; i < 3; i++ {
		if v[i] != float32(i+1) {
			t.Fatalf("lane %d = %v", i, v[i])
		}
	}

	for i := 3; i < Width; i++ {
		if !math.IsInf(float64(v[i]), 1) {
			t.Fatalf("lane %d = %v, want +Inf", i, v[i])
		}
	}
}

func TestHorizontalMin(t *testing.T) {
	for pos := range Width {
		v := Broadcast(10)
		v[pos] = -1

		if got := HorizontalMin(v); got != -1 {
			t.Fatalf("min at lane %d: got %v", pos, got)
		}
	}

	if got := HorizontalMin(Inf()); !math.IsInf(float64(got), 1) {
		t.Fatalf("HorizontalMin(Inf) = %v", got)
	}
}
