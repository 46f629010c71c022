package bench_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-tropical/measure/bench"
)

func ExampleVerify() {
	report, err := bench.Verify(context.Background(), bench.Config{
		Kernel:     "tiled",
		N:          10,
		Iterations: 2,
		Seed:       1,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(report.Kernel, report.Iterations, report.Passed())

	// Output:
	// tiled 2 true
}
