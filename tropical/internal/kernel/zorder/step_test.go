package zorder

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/morton"
	"github.com/cwbudde/algo-tropical/internal/scratch"
	"github.com/cwbudde/algo-tropical/internal/testutil"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/kerneltest"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

func TestStep(t *testing.T) {
	kerneltest.Run(t, Step)
}

func TestStepScratchLimit(t *testing.T) {
	kerneltest.RunScratchLimit(t, Step)
}

// Any stripe width, including widths that leave a short last stripe and
// widths larger than n, produces the same result.
func TestStripeWidths(t *testing.T) {
	for _, n := range []int{9, 23, 40} {
		data := testutil.RandomMatrix(int64(n)*7, n)
		want := kerneltest.Reference(data, n)

		for _, width := range []int{1, 2, 3, 7, 8, n - 1, n, n + 5, registry.DefaultStripeWidth} {
			if width < 1 {
				continue
			}
			got := make([]float32, n*n)
			cfg := registry.Config{StripeWidth: width}.Normalize()
			if err := Step(got, data, n, cfg); err != nil {
				t.Fatalf("n=%d width=%d: %v", n, width, err)
			}
			testutil.RequireSliceNearlyEqual(t, got, want, testutil.Tolerance)
		}
	}
}

// With one row lane and one column lane per k, each accumulator must land
// exactly on the cells it is documented to hold.
func TestReduceStripeLaneMapping(t *testing.T) {
	var rowVec, colVec lanes.F32x8
	for b := range lanes.Width {
		rowVec[b] = float32(b * 100)
		colVec[b] = float32(b)
	}

	acc := make([]lanes.F32x8, accPerTile)
	reduceStripe(acc, []lanes.F32x8{rowVec}, []lanes.F32x8{colVec}, true)

	for s := range accPerTile {
		rs, cs := s&6, s&1
		for l := range lanes.Width {
			want := float32((l^rs)*100 + (l ^ cs))
			if acc[s][l] != want {
				t.Fatalf("acc[%d][%d] = %v, want %v", s, l, acc[s][l], want)
			}
		}
	}

	n := lanes.Width
	result := make([]float32, n*n)
	unpack(result, n, 0, 0, acc)

	for i := range n {
		for j := range n {
			if want := float32(i*100 + j); result[i*n+j] != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", i, j, result[i*n+j], want)
			}
		}
	}
}

// A later stripe must continue from the persisted minima rather than
// restart from +Inf.
func TestReduceStripeCarriesPartials(t *testing.T) {
	acc := make([]lanes.F32x8, accPerTile)
	small := lanes.Broadcast(1)
	large := lanes.Broadcast(50)

	reduceStripe(acc, []lanes.F32x8{small}, []lanes.F32x8{small}, true)
	reduceStripe(acc, []lanes.F32x8{large}, []lanes.F32x8{large}, false)

	for s, v := range acc {
		if v != lanes.Broadcast(2) {
			t.Fatalf("acc[%d] = %v, want all 2", s, v)
		}
	}

	reduceStripe(acc, []lanes.F32x8{large}, []lanes.F32x8{large}, true)
	if acc[0] != lanes.Broadcast(100) {
		t.Fatalf("first stripe did not reset: %v", acc[0])
	}
}

// The packed operands, the traversal table and the accumulators all come
// out of the scratch budget: one byte less than their sum must fail.
func TestScratchBudgetCoversTileTable(t *testing.T) {
	n := 16
	groups := (n + lanes.Width - 1) / lanes.Width
	vec := int64(unsafe.Sizeof(lanes.F32x8{}))
	tile := int64(unsafe.Sizeof(morton.Tile{}))

	packed := 2 * int64(groups*n) * vec
	table := int64(groups*groups) * tile
	partials := int64(groups*groups*accPerTile) * vec
	need := packed + table + partials

	data := testutil.RandomMatrix(3, n)
	result := make([]float32, n*n)

	cfg := registry.Config{ScratchLimit: need}.Normalize()
	if err := Step(result, data, n, cfg); err != nil {
		t.Fatalf("limit %d: %v", need, err)
	}
	testutil.RequireSliceNearlyEqual(t, result, kerneltest.Reference(data, n), testutil.Tolerance)

	cfg.ScratchLimit = need - 1
	if err := Step(result, data, n, cfg); !errors.Is(err, scratch.ErrAllocation) {
		t.Fatalf("limit %d: err = %v, want ErrAllocation", need-1, err)
	}
}
