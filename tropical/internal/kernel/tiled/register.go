package tiled

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "tiled",
		Rank:        4,
		Description: "3x3 output tile of 8-lane accumulators per pass over k",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    40,
		Step:        Step,
	})
}
