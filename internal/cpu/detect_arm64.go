//go:build arm64

package cpu

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// detectFeaturesImpl reads the ARM64 feature registers through
// golang.org/x/sys/cpu. ASIMD is mandatory on ARMv8.
func detectFeaturesImpl() Features {
	return Features{
		HasNEON:       cpu.ARM64.HasASIMD,
		HasFMA:        cpu.ARM64.HasASIMD,
		CacheLineSize: int(unsafe.Sizeof(cpu.CacheLinePad{})),
		Architecture:  runtime.GOARCH,
	}
}
