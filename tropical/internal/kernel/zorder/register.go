package zorder

import (
	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/registry"
)

// init registers the striped Z-order kernel as the default choice.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "zorder",
		Rank:        5,
		Description: "8x8 tiles in Morton order, lane shuffles, striped k",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    50,
		Step:        Step,
	})
}
