package tropical

// Importing the kernel packages runs their init functions, which register
// them with the kernel registry.
import (
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/baseline"
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/ilp"
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/linear"
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/simd"
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/tiled"
	_ "github.com/cwbudde/algo-tropical/tropical/internal/kernel/zorder"
)
