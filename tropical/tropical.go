package tropical

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// KernelInfo describes one registered kernel.
type KernelInfo struct {
	Name        string
	Rank        int
	Description string
	SIMDLevel   cpu.SIMDLevel
}

var (
	defaultEntry    *registry.OpEntry
	defaultInitOnce sync.Once
)

func initDefaultKernel() {
	defaultEntry = registry.Global.Lookup(cpu.DetectFeatures())
}

// DefaultKernel returns the name of the kernel Step uses, or "" if none is
// registered.
func DefaultKernel() string {
	defaultInitOnce.Do(initDefaultKernel)
	if defaultEntry == nil {
		return ""
	}
	return defaultEntry.Name
}

// Kernels lists the registered kernels from simplest to most optimized.
func Kernels() []KernelInfo {
	entries := registry.Global.ListEntries()
	out := make([]KernelInfo, len(entries))
	for i, e := range entries {
		out[i] = KernelInfo{
			Name:        e.Name,
			Rank:        e.Rank,
			Description: e.Description,
			SIMDLevel:   e.SIMDLevel,
		}
	}
	return out
}

// Step writes the min-plus product of data with itself into result using
// the default kernel. Both slices must hold n*n values and must not
// overlap; data is not modified.
func Step(result, data []float32, n int, opts ...Option) error {
	defaultInitOnce.Do(initDefaultKernel)
	if defaultEntry == nil {
		return ErrNoKernel
	}
	return run(defaultEntry, result, data, n, opts)
}

// StepWith is Step with an explicitly named kernel.
func StepWith(name string, result, data []float32, n int, opts ...Option) error {
	entry := registry.Global.LookupName(name)
	if entry == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return run(entry, result, data, n, opts)
}

func run(entry *registry.OpEntry, result, data []float32, n int, opts []Option) error {
	if err := validate(result, data, n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	cfg := ApplyOptions(opts...)
	if err := entry.Step(result[:n*n], data[:n*n], n, cfg.kernelConfig()); err != nil {
		return fmt.Errorf("tropical: %s kernel: %w", entry.Name, err)
	}
	return nil
}

func validate(result, data []float32, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDimension, n)
	}
	if n > 0 && n > math.MaxInt/n {
		return fmt.Errorf("%w: %d*%d overflows int", ErrLengthMismatch, n, n)
	}

	size := n * n
	if len(result) != size {
		return fmt.Errorf("%w: result has %d, want %d", ErrLengthMismatch, len(result), size)
	}
	if len(data) != size {
		return fmt.Errorf("%w: data has %d, want %d", ErrLengthMismatch, len(data), size)
	}
	if overlaps(result, data) {
		return ErrAliased
	}
	return nil
}

// overlaps reports whether a and b share any element.
func overlaps(a, b []float32) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	const elem = unsafe.Sizeof(float32(0))
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	a1 := a0 + uintptr(len(a))*elem
	b1 := b0 + uintptr(len(b))*elem

	return a0 < b1 && b0 < a1
}
