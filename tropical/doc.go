// Package tropical computes one min-plus (tropical) product step over a
// dense distance matrix:
//
//	R[i][j] = min over k of D[i][k] + D[k][j]
//
// Matrices are n×n float32 values in row-major order, with +Inf meaning
// "no edge". Applying Step repeatedly to its own output converges to
// all-pairs shortest path lengths; a single call performs one step only.
//
// # Kernels
//
// The same product is implemented by six kernels, each adding one
// optimization to the previous one:
//
//   - baseline: triple loop, scalar running minimum
//   - linear: transposed copy for sequential reads, parallel rows
//   - ilp: four independent accumulators along k
//   - simd: 8-lane vectors with a horizontal minimum per cell
//   - tiled: 3×3 register tile of vector accumulators
//   - zorder: 8×8 tiles in Morton order, lane shuffles, striped k
//
// Step uses the highest-priority kernel for the running CPU (zorder).
// StepWith selects a kernel by name and Kernels lists them.
//
// # Usage
//
//	result := make([]float32, n*n)
//	if err := tropical.Step(result, dist, n); err != nil {
//		return err
//	}
//
// Every call allocates its scratch buffers afresh and keeps no state
// between calls, so concurrent calls on distinct buffers are safe.
package tropical
