package linear

import (
	"testing"

	"github.com/cwbudde/algo-tropical/tropical/internal/kernel/kerneltest"
)

func TestStep(t *testing.T) {
	kerneltest.Run(t, Step)
}

func TestStepScratchLimit(t *testing.T) {
	kerneltest.RunScratchLimit(t, Step)
}
