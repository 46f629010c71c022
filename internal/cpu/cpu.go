// Package cpu reports the processor capabilities that matter for choosing a
// min-plus kernel: vector extensions, the native float32 lane count and the
// cache line size that packed operand rows are aligned to.
//
// Detection runs once, on the first call to DetectFeatures, and the result is
// cached. Tests may override it with SetForcedFeatures.
package cpu

import (
	"sync"
)

// SIMDLevel names a vector instruction set extension.
type SIMDLevel int

const (
	// SIMDNone is portable Go with no vector extension requirement.
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 is the x86-64 baseline, 128-bit vectors.
	SIMDSSE2

	// SIMDAVX is x86-64 AVX, 256-bit float vectors.
	SIMDAVX

	// SIMDAVX2 is x86-64 AVX2.
	SIMDAVX2

	// SIMDAVX512 is x86-64 AVX-512F, 512-bit vectors.
	SIMDAVX512

	// SIMDNEON is ARM Advanced SIMD, 128-bit vectors.
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Float32Lanes returns how many float32 values one register of this level
// holds. SIMDNone reports 1.
func (s SIMDLevel) Float32Lanes() int {
	switch s {
	case SIMDSSE2, SIMDNEON:
		return 4
	case SIMDAVX, SIMDAVX2:
		return 8
	case SIMDAVX512:
		return 16
	default:
		return 1
	}
}

// defaultCacheLine is used when the platform does not report a line size.
const defaultCacheLine = 64

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasFMA    bool
	HasNEON   bool

	// CacheLineSize is the L1 data cache line size in bytes.
	CacheLineSize int

	// ForceGeneric restricts selection to SIMDNone kernels.
	ForceGeneric bool

	// Architecture is runtime.GOARCH.
	Architecture string
}

// BestLevel returns the widest SIMD level the features support.
func (f Features) BestLevel() SIMDLevel {
	if f.ForceGeneric {
		return SIMDNone
	}

	for _, level := range []SIMDLevel{SIMDAVX512, SIMDAVX2, SIMDAVX, SIMDNEON, SIMDSSE2} {
		if Supports(f, level) {
			return level
		}
	}

	return SIMDNone
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the CPU features of the running system.
// It is safe for concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
		if detectedFeatures.CacheLineSize <= 0 {
			detectedFeatures.CacheLineSize = defaultCacheLine
		}
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()

	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports reports whether features can run a kernel that requires level.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDAVX512:
		return features.HasAVX512
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
