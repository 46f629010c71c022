package bench

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/cwbudde/algo-tropical/tropical"
)

func TestRandomMatrix(t *testing.T) {
	a := RandomMatrix(rand.New(rand.NewPCG(1, 2)), 16)
	b := RandomMatrix(rand.New(rand.NewPCG(1, 2)), 16)

	if len(a) != 256 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v with the same seed", i, a[i], b[i])
		}
		if a[i] < 0 || a[i] >= 1 {
			t.Fatalf("index %d: %v outside [0,1)", i, a[i])
		}
	}

	if got := RandomMatrix(rand.New(rand.NewPCG(1, 2)), 0); len(got) != 0 {
		t.Fatalf("n=0: len = %d", len(got))
	}
}

func TestRun(t *testing.T) {
	var calls int
	report, err := Run(context.Background(), Config{
		Kernel:     "simd",
		N:          24,
		Iterations: 5,
		Seed:       9,
		OnIteration: func(i int, elapsed time.Duration, m *tropical.Mismatch) {
			if i != calls || elapsed < 0 || m != nil {
				t.Errorf("callback %d: i=%d elapsed=%v mismatch=%v", calls, i, elapsed, m)
			}
			calls++
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if report.Kernel != "simd" || report.N != 24 {
		t.Fatalf("report header: %+v", report)
	}
	if len(report.Seconds) != 5 || calls != 5 || report.Stats.Count != 5 {
		t.Fatalf("samples %d calls %d count %d", len(report.Seconds), calls, report.Stats.Count)
	}
	for i, s := range report.Seconds {
		if s < 0 || s > 60 {
			t.Fatalf("sample %d = %g s", i, s)
		}
	}
	if report.Stats.Min > report.Stats.Mean || report.Stats.Mean > report.Stats.Max {
		t.Fatalf("stats out of order: %+v", report.Stats)
	}
}

func TestRunDefaultKernel(t *testing.T) {
	report, err := Run(context.Background(), Config{N: 3})
	if err != nil {
		t.Fatal(err)
	}
	if report.Kernel != tropical.DefaultKernel() || len(report.Seconds) != 1 {
		t.Fatalf("report: %+v", report)
	}
}

func TestRunMaxSeconds(t *testing.T) {
	report, err := Run(context.Background(), Config{
		Kernel:     "baseline",
		N:          8,
		Iterations: 1_000_000,
		MaxSeconds: 1e-9,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Seconds) != 1 {
		t.Fatalf("expected the limit to stop after one call, got %d", len(report.Seconds))
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, Config{N: 4, Iterations: 3})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if len(report.Seconds) != 0 {
		t.Fatalf("samples after cancel: %d", len(report.Seconds))
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative N", Config{N: -1}, ErrInvalidConfig},
		{"negative limit", Config{N: 2, MaxSeconds: -1}, ErrInvalidConfig},
		{"unknown kernel", Config{N: 2, Kernel: "nope"}, tropical.ErrUnknownKernel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.cfg); !errors.Is(err, tt.want) {
				t.Fatalf("Run err = %v, want %v", err, tt.want)
			}
			if _, err := Verify(context.Background(), tt.cfg); !errors.Is(err, tt.want) {
				t.Fatalf("Verify err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyAllKernels(t *testing.T) {
	for _, k := range tropical.Kernels() {
		t.Run(k.Name, func(t *testing.T) {
			var dots int
			report, err := Verify(context.Background(), Config{
				Kernel:     k.Name,
				N:          19,
				Iterations: 3,
				Seed:       4,
				Options:    []tropical.Option{tropical.WithStripeWidth(5)},
				OnIteration: func(_ int, _ time.Duration, m *tropical.Mismatch) {
					if m == nil {
						dots++
					}
				},
			})
			if err != nil {
				t.Fatal(err)
			}
			if !report.Passed() || report.Iterations != 3 || dots != 3 {
				t.Fatalf("report %+v, passing iterations %d", report, dots)
			}
		})
	}
}

func TestVerifyKernelError(t *testing.T) {
	_, err := Verify(context.Background(), Config{
		Kernel:  "zorder",
		N:       16,
		Options: []tropical.Option{tropical.WithScratchLimit(64)},
	})
	if !errors.Is(err, tropical.ErrAllocation) {
		t.Fatalf("err = %v, want ErrAllocation", err)
	}
}

func TestRunSecondsMatchDurations(t *testing.T) {
	var want []time.Duration
	report, err := Run(context.Background(), Config{
		N:          4,
		Iterations: 4,
		step: func(result, data []float32, n int) error {
			time.Sleep(time.Millisecond)
			return nil
		},
		OnIteration: func(_ int, elapsed time.Duration, _ *tropical.Mismatch) {
			want = append(want, elapsed)
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Seconds) != len(want) {
		t.Fatalf("%d samples, %d callbacks", len(report.Seconds), len(want))
	}
	for i, s := range report.Seconds {
		if math.Abs(s-want[i].Seconds()) > 1e-12 || s < 1e-3 {
			t.Fatalf("sample %d = %g s, call took %v", i, s, want[i])
		}
	}
}

func TestExhaustedCountsKernelTimeOnly(t *testing.T) {
	tests := []struct {
		maxSeconds float64
		spent      time.Duration
		want       bool
	}{
		{0, time.Hour, false},
		{1, time.Second, false},
		{1, time.Second + 1, true},
		{1e-9, 2 * time.Nanosecond, true},
		{1e-12, time.Nanosecond, true},
	}

	for _, tt := range tests {
		cfg := Config{MaxSeconds: tt.maxSeconds}
		if got := cfg.exhausted(tt.spent); got != tt.want {
			t.Errorf("MaxSeconds %g, spent %v: got %t, want %t", tt.maxSeconds, tt.spent, got, tt.want)
		}
	}
}

// Generating a large input takes longer than the budget, but only the
// near-instant kernel calls count against it.
func TestRunBudgetIgnoresInputGeneration(t *testing.T) {
	var calls int
	report, err := Run(context.Background(), Config{
		N:          600,
		Iterations: 5,
		MaxSeconds: 1e-3,
		step: func(result, data []float32, n int) error {
			calls++
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 5 || len(report.Seconds) != 5 {
		t.Fatalf("calls %d, samples %d, want 5", calls, len(report.Seconds))
	}
}

func TestVerifyRecordsFailures(t *testing.T) {
	var seen []*tropical.Mismatch
	report, err := Verify(context.Background(), Config{
		N:          6,
		Iterations: 4,
		Seed:       2,
		step: func(result, data []float32, n int) error {
			if err := tropical.Reference(result, data, n); err != nil {
				return err
			}
			if len(seen)%2 == 1 {
				result[7] += 0.5
			}
			return nil
		},
		OnIteration: func(_ int, _ time.Duration, m *tropical.Mismatch) {
			seen = append(seen, m)
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if report.Passed() || len(report.Failures) != 2 {
		t.Fatalf("failures: %+v", report.Failures)
	}
	for k, f := range report.Failures {
		if f.Iteration != 2*k+1 || f.Index != 7 {
			t.Fatalf("failure %d: %+v", k, f)
		}
		if d := f.Got - f.Want; d < 0.49 || d > 0.51 {
			t.Fatalf("failure %d: got %v want %v", k, f.Got, f.Want)
		}
	}
	if seen[0] != nil || seen[1] == nil || seen[2] != nil || seen[3] == nil {
		t.Fatalf("callback mismatches: %v", seen)
	}
}
