package ilp

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "ilp",
		Rank:        2,
		Description: "four independent accumulators along k",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    20,
		Step:        Step,
	})
}
