package timing

import (
	"strconv"
	"testing"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{64, 1024, 65536} {
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = 1e-3 + float64(i%17)*1e-5
		}

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				Calculate(samples)
			}
		})
	}
}
