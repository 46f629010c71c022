// Package bench times and verifies min-plus kernels on random input.
//
// Every iteration draws a fresh matrix of uniform [0,1) values, so a run
// exercises many inputs rather than one cached one.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cwbudde/algo-tropical/stats/timing"
	"github.com/cwbudde/algo-tropical/tropical"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// ErrInvalidConfig is returned for a Config that cannot be run.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Config controls a benchmark or verification run.
type Config struct {
	// Kernel names the kernel. Empty selects tropical.DefaultKernel.
	Kernel string

	// N is the matrix dimension.
	N int

	// Iterations is the maximum number of calls. Values below 1 mean 1.
	Iterations int

	// MaxSeconds stops the run once the summed kernel time exceeds this
	// many seconds. Input generation and reference runs are not counted.
	// 0 disables the limit.
	MaxSeconds float64

	// Seed makes the generated inputs reproducible.
	Seed uint64

	// Tolerance is used by Verify. 0 means tropical.DefaultTolerance.
	Tolerance float64

	// Options are passed to every kernel call.
	Options []tropical.Option

	// OnIteration, if set, is called after every iteration with its index,
	// the kernel call's duration and, in Verify, the iteration's mismatch
	// (nil when it passed).
	OnIteration func(iteration int, elapsed time.Duration, mismatch *tropical.Mismatch)

	// step replaces the kernel call when set.
	step func(result, data []float32, n int) error
}

func (c Config) normalize() (Config, error) {
	if c.N < 0 {
		return c, fmt.Errorf("%w: negative N %d", ErrInvalidConfig, c.N)
	}
	if c.MaxSeconds < 0 {
		return c, fmt.Errorf("%w: negative MaxSeconds %g", ErrInvalidConfig, c.MaxSeconds)
	}
	if c.Iterations < 1 {
		c.Iterations = 1
	}
	if c.Tolerance <= 0 {
		c.Tolerance = tropical.DefaultTolerance
	}
	if c.Kernel == "" {
		c.Kernel = tropical.DefaultKernel()
	}
	return c, nil
}

// timedStep runs the kernel once and reports how long the call took.
func (c Config) timedStep(result, data []float32) (time.Duration, error) {
	start := time.Now()

	var err error
	if c.step != nil {
		err = c.step(result, data, c.N)
	} else {
		err = tropical.StepWith(c.Kernel, result, data, c.N, c.Options...)
	}

	return time.Since(start), err
}

// exhausted reports whether spent kernel time is past MaxSeconds.
func (c Config) exhausted(spent time.Duration) bool {
	return c.MaxSeconds > 0 && float64(spent) > c.MaxSeconds*float64(time.Second)
}

// RandomMatrix returns n*n values drawn uniformly from [0,1).
func RandomMatrix(rng *rand.Rand, n int) []float32 {
	m := make([]float32, n*n)
	for i := range m {
		m[i] = rng.Float32()
	}
	return m
}

// Report is the outcome of Run.
type Report struct {
	Kernel string
	N      int

	// Seconds holds the duration of every completed call.
	Seconds []float64

	Stats timing.Stats
}

// Run calls the configured kernel up to cfg.Iterations times on fresh input
// and records how long each call took. The context is checked between
// calls; a cancelled run returns the samples gathered so far with the
// context's error.
func Run(ctx context.Context, cfg Config) (Report, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Report{}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.N)))
	result := make([]float32, cfg.N*cfg.N)
	nanos := make([]float64, 0, cfg.Iterations)

	var spent time.Duration
	for i := range cfg.Iterations {
		if err = ctx.Err(); err != nil {
			break
		}

		data := RandomMatrix(rng, cfg.N)

		var elapsed time.Duration
		if elapsed, err = cfg.timedStep(result, data); err != nil {
			break
		}

		nanos = append(nanos, float64(elapsed))
		spent += elapsed
		if cfg.OnIteration != nil {
			cfg.OnIteration(i, elapsed, nil)
		}

		if cfg.exhausted(spent) {
			break
		}
	}

	seconds := make([]float64, len(nanos))
	vecmath.ScaleBlock(seconds, nanos, 1/float64(time.Second))

	return Report{
		Kernel:  cfg.Kernel,
		N:       cfg.N,
		Seconds: seconds,
		Stats:   timing.Calculate(seconds),
	}, err
}

// Failure records a verification mismatch.
type Failure struct {
	Iteration int
	tropical.Mismatch
}

// VerifyReport is the outcome of Verify.
type VerifyReport struct {
	Kernel     string
	N          int
	Iterations int
	Failures   []Failure
}

// Passed reports whether every iteration matched the reference.
func (r VerifyReport) Passed() bool {
	return len(r.Failures) == 0
}

// Verify runs the configured kernel and tropical.Reference on the same
// fresh input each iteration and records the first mismatching element of
// every failing iteration.
func Verify(ctx context.Context, cfg Config) (VerifyReport, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return VerifyReport{}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.N)))
	got := make([]float32, cfg.N*cfg.N)
	want := make([]float32, cfg.N*cfg.N)

	report := VerifyReport{Kernel: cfg.Kernel, N: cfg.N}

	var spent time.Duration
	for i := range cfg.Iterations {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		data := RandomMatrix(rng, cfg.N)
		if err = tropical.Reference(want, data, cfg.N); err != nil {
			return report, err
		}

		var elapsed time.Duration
		if elapsed, err = cfg.timedStep(got, data); err != nil {
			return report, err
		}
		spent += elapsed

		m := tropical.Compare(got, want, cfg.Tolerance)
		if m != nil {
			report.Failures = append(report.Failures, Failure{Iteration: i, Mismatch: *m})
		}
		report.Iterations++

		if cfg.OnIteration != nil {
			cfg.OnIteration(i, elapsed, m)
		}

		if cfg.exhausted(spent) {
			break
		}
	}

	return report, nil
}
