// Package registry holds the min-plus kernel implementations.
//
// Each kernel package registers one OpEntry from its init function. The
// tropical package resolves the default kernel with Lookup, which returns the
// highest-priority entry the CPU supports, and named kernels with
// LookupName.
package registry

import (
	"runtime"
	"slices"
	"sync"

	"github.com/cwbudde/algo-tropical/internal/cpu"
)

// DefaultStripeWidth bounds how many reduction indices the striped kernel
// processes before persisting its partial minima.
const DefaultStripeWidth = 500

// Config carries the per-call tuning knobs shared by all kernels.
type Config struct {
	// Workers bounds the goroutines used by parallel kernels.
	// Values <= 0 select runtime.GOMAXPROCS(0).
	Workers int

	// StripeWidth is the k-stripe width of the striped kernel.
	// Values <= 0 select DefaultStripeWidth.
	StripeWidth int

	// ScratchLimit is the byte budget for scratch buffers.
	// Values <= 0 select scratch.DefaultLimit.
	ScratchLimit int64
}

// Normalize fills unset fields with their defaults.
func (c Config) Normalize() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.StripeWidth <= 0 {
		c.StripeWidth = DefaultStripeWidth
	}
	return c
}

// StepFn computes result[i*n+j] = min_k data[i*n+k] + data[k*n+j].
// Arguments are validated by the caller; cfg is already normalized.
type StepFn func(result, data []float32, n int, cfg Config) error

// OpEntry is one registered kernel.
type OpEntry struct {
	// Name identifies the kernel on the command line and in StepWith.
	Name string

	// Rank is the kernel's position in the optimization ladder, 0 first.
	Rank int

	// Description is a one-line summary for listings.
	Description string

	// SIMDLevel is the instruction set the kernel requires.
	SIMDLevel cpu.SIMDLevel

	// Priority orders candidates in Lookup; higher wins.
	Priority int

	Step StepFn
}

// OpRegistry stores available kernels.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the registry populated by the kernel packages.
var Global = &OpRegistry{}

// Register adds an entry. Registrations should complete before the first
// Lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority entry supported by features, or nil.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// LookupName returns the entry registered under name, or nil.
func (r *OpRegistry) LookupName(name string) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			entry := r.entries[i]
			return &entry
		}
	}

	return nil
}

// sortByPriority orders entries by descending priority, keeping
// registration order among equals. Must be called with r.mu held.
func (r *OpRegistry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of all entries ordered by Rank.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := slices.Clone(r.entries)
	slices.SortStableFunc(entries, func(a, b OpEntry) int {
		return a.Rank - b.Rank
	})
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
