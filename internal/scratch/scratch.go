// Package scratch hands out the per-call working buffers of the min-plus
// kernels from a size-checked arena.
//
// An Arena belongs to exactly one kernel invocation. Every request is
// checked for integer overflow and against the arena's byte budget before
// anything is allocated, so an impossible request becomes an error instead
// of a runtime panic. Release drops every buffer the arena handed out.
package scratch

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/algo-tropical/internal/lanes"
	"github.com/cwbudde/algo-tropical/internal/morton"
)

// ErrAllocation is wrapped by every error returned for a request that
// cannot be satisfied.
var ErrAllocation = errors.New("scratch: allocation failed")

// DefaultLimit is the byte budget of an arena created with limit <= 0.
const DefaultLimit int64 = 1 << 38

const (
	floatBytes  = int64(unsafe.Sizeof(float32(0)))
	vectorBytes = int64(unsafe.Sizeof(lanes.F32x8{}))
	tileBytes   = int64(unsafe.Sizeof(morton.Tile{}))
)

// Arena tracks the scratch buffers of one call.
type Arena struct {
	limit int64
	used  int64

	floats  [][]float32
	vectors [][]lanes.F32x8
	tiles   [][]morton.Tile
}

// NewArena returns an arena that refuses to hand out more than limit bytes
// in total. A non-positive limit selects DefaultLimit.
func NewArena(limit int64) *Arena {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Arena{limit: limit}
}

// Size multiplies dims with overflow checking.
func Size(dims ...int) (int, error) {
	total := 1
	for _, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension %d", ErrAllocation, d)
		}
		if d != 0 && total > math.MaxInt/d {
			return 0, fmt.Errorf("%w: size %v overflows int", ErrAllocation, dims)
		}
		total *= d
	}
	return total, nil
}

func (a *Arena) reserve(count int, elemBytes int64) error {
	if count < 0 {
		return fmt.Errorf("%w: negative length %d", ErrAllocation, count)
	}
	if int64(count) > (math.MaxInt64-a.used)/elemBytes {
		return fmt.Errorf("%w: %d elements overflow the byte count", ErrAllocation, count)
	}

	bytes := int64(count) * elemBytes
	if a.used+bytes > a.limit {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrAllocation, bytes, a.used, a.limit)
	}

	a.used += bytes
	return nil
}

// Floats returns count float32 values set to fill.
func (a *Arena) Floats(count int, fill float32) ([]float32, error) {
	if err := a.reserve(count, floatBytes); err != nil {
		return nil, err
	}

	buf := make([]float32, count)
	if fill != 0 {
		for i := range buf {
			buf[i] = fill
		}
	}

	a.floats = append(a.floats, buf)
	return buf, nil
}

// Vectors returns count vectors with every lane +Inf.
func (a *Arena) Vectors(count int) ([]lanes.F32x8, error) {
	if err := a.reserve(count, vectorBytes); err != nil {
		return nil, err
	}

	buf := make([]lanes.F32x8, count)
	inf := lanes.Inf()
	for i := range buf {
		buf[i] = inf
	}

	a.vectors = append(a.vectors, buf)
	return buf, nil
}

// Tiles returns count zeroed traversal table entries.
func (a *Arena) Tiles(count int) ([]morton.Tile, error) {
	if err := a.reserve(count, tileBytes); err != nil {
		return nil, err
	}

	buf := make([]morton.Tile, count)
	a.tiles = append(a.tiles, buf)
	return buf, nil
}

// Used returns the number of bytes handed out since the last Release.
func (a *Arena) Used() int64 {
	return a.used
}

// Release forgets every buffer handed out by the arena. Buffers must not be
// used afterwards.
func (a *Arena) Release() {
	clear(a.floats)
	clear(a.vectors)
	clear(a.tiles)
	a.floats = a.floats[:0]
	a.vectors = a.vectors[:0]
	a.tiles = a.tiles[:0]
	a.used = 0
}
