package linear

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "linear",
		Rank:        1,
		Description: "transposed copy for sequential reads, parallel rows",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    10,
		Step:        Step,
	})
}
