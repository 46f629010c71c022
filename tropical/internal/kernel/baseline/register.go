package baseline

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// init registers the triple loop. It has the lowest priority and is only
// selected by name.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "baseline",
		Rank:        0,
		Description: "triple loop with a scalar running minimum",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    0,
		Step:        Step,
	})
}
