package simd

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "simd",
		Rank:        3,
		Description: "8-lane vectors along k with one horizontal minimum per cell",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    30,
		Step:        Step,
	})
}
