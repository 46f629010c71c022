// Command minplus benchmarks and verifies the min-plus product kernels.
//
// Usage:
//
//	minplus [flags] benchmark N [ITERATIONS [MAX_SECONDS]]
//	minplus [flags] test N [ITERATIONS [MAX_SECONDS]]
//	minplus list
//	minplus info
//
// benchmark prints the seconds taken by every call followed by a summary.
// test compares every call against the reference product, printing a dot
// per passing iteration and an ERROR line for the first mismatching element.
//
// Examples:
//
//	minplus benchmark 1000 5
//	minplus -kernel simd test 257 10
//	minplus -all -workers 4 benchmark 2000 3 60
//	minplus list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-tropical/internal/cpu"
	"github.com/cwbudde/algo-tropical/measure/bench"
	"github.com/cwbudde/algo-tropical/tropical"
)

var errUsage = errors.New("invalid arguments")

// runVerify is replaced in tests.
var runVerify = bench.Verify

// invocation is a parsed command line.
type invocation struct {
	command    string
	n          int
	iterations int
	maxSeconds float64

	kernels []string
	seed    uint64
	tol     float64
	options []tropical.Option
	workers int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch inv.command {
	case "list":
		return printList(stdout, stderr)
	case "info":
		return printInfo(stdout, inv.workers)
	case "benchmark":
		return runBenchmark(ctx, inv, stdout, stderr)
	default:
		return runTest(ctx, inv, stdout, stderr)
	}
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flagValues) {
	fs := flag.NewFlagSet("minplus", flag.ContinueOnError)
	fs.SetOutput(stderr)

	v := &flagValues{}
	fs.StringVar(&v.kernel, "kernel", "", "kernel to run (default: best for this CPU, see list)")
	fs.BoolVar(&v.all, "all", false, "run every kernel in rank order")
	fs.Uint64Var(&v.seed, "seed", 0, "input seed (0: derive from the clock)")
	fs.IntVar(&v.workers, "workers", 0, "goroutines per call (0: GOMAXPROCS)")
	fs.IntVar(&v.stripe, "stripe", tropical.DefaultStripeWidth, "zorder reduction stripe width")
	fs.Float64Var(&v.tol, "tol", tropical.DefaultTolerance, "absolute tolerance for test")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: minplus [flags] <command> N [ITERATIONS [MAX_SECONDS]]\n\n")
		_, _ = fmt.Fprintf(stderr, "Computes one min-plus product step of random N x N matrices.\n\n")
		_, _ = fmt.Fprintf(stderr, "Commands:\n")
		_, _ = fmt.Fprintf(stderr, "  benchmark   time each call\n")
		_, _ = fmt.Fprintf(stderr, "  test        compare each call against the reference product\n")
		_, _ = fmt.Fprintf(stderr, "  list        list the available kernels\n")
		_, _ = fmt.Fprintf(stderr, "  info        show CPU features and the default kernel\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\nExamples:\n")
		_, _ = fmt.Fprintf(stderr, "  minplus benchmark 1000 5\n")
		_, _ = fmt.Fprintf(stderr, "  minplus -kernel simd test 257 10\n")
		_, _ = fmt.Fprintf(stderr, "  minplus -all benchmark 2000 3 60\n")
	}

	return fs, v
}

type flagValues struct {
	kernel  string
	all     bool
	seed    uint64
	workers int
	stripe  int
	tol     float64
}

func parseArgs(args []string, stderr io.Writer) (invocation, error) {
	fs, v := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return invocation{}, err
	}

	fail := func(format string, a ...any) (invocation, error) {
		fs.Usage()
		return invocation{}, fmt.Errorf("%w: "+format, append([]any{errUsage}, a...)...)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fail("missing command")
	}

	inv := invocation{command: rest[0], iterations: 1, seed: v.seed, tol: v.tol, workers: v.workers}

	switch inv.command {
	case "list", "info":
		if len(rest) != 1 {
			return fail("%s takes no arguments", inv.command)
		}
		return inv, nil
	case "benchmark", "test":
	default:
		return fail("unknown command %q", inv.command)
	}

	if len(rest) < 2 || len(rest) > 4 {
		return fail("%s needs N [ITERATIONS [MAX_SECONDS]]", inv.command)
	}

	var err error
	if inv.n, err = parseCount(rest[1], 0); err != nil {
		return fail("N: %v", err)
	}
	if len(rest) > 2 {
		if inv.iterations, err = parseCount(rest[2], 1); err != nil {
			return fail("ITERATIONS: %v", err)
		}
	}
	if len(rest) > 3 {
		inv.maxSeconds, err = strconv.ParseFloat(rest[3], 64)
		if err != nil || inv.maxSeconds < 0 {
			return fail("MAX_SECONDS: %q is not a non-negative number", rest[3])
		}
		// Any call exceeds a zero budget.
		if inv.maxSeconds == 0 {
			inv.iterations = 1
		}
	}

	if v.workers < 0 {
		return fail("-workers must not be negative")
	}
	if v.stripe < 1 {
		return fail("-stripe must be positive")
	}
	if !(v.tol > 0) {
		return fail("-tol must be positive")
	}

	switch {
	case v.all:
		for _, k := range tropical.Kernels() {
			inv.kernels = append(inv.kernels, k.Name)
		}
	case v.kernel != "":
		if !knownKernel(v.kernel) {
			return fail("unknown kernel %q (use list to see available)", v.kernel)
		}
		inv.kernels = []string{v.kernel}
	default:
		inv.kernels = []string{tropical.DefaultKernel()}
	}

	inv.options = []tropical.Option{
		tropical.WithWorkers(v.workers),
		tropical.WithStripeWidth(v.stripe),
	}

	if inv.seed == 0 {
		inv.seed = uint64(time.Now().UnixNano())
	}

	return inv, nil
}

func parseCount(s string, minimum int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < minimum {
		return 0, fmt.Errorf("%q is not an integer >= %d", s, minimum)
	}
	return v, nil
}

func knownKernel(name string) bool {
	for _, k := range tropical.Kernels() {
		if k.Name == name {
			return true
		}
	}
	return false
}

func (inv invocation) config(kernel string) bench.Config {
	return bench.Config{
		Kernel:     kernel,
		N:          inv.n,
		Iterations: inv.iterations,
		MaxSeconds: inv.maxSeconds,
		Seed:       inv.seed,
		Tolerance:  inv.tol,
		Options:    inv.options,
	}
}

func runBenchmark(ctx context.Context, inv invocation, stdout, stderr io.Writer) int {
	code := 0
	for _, kernel := range inv.kernels {
		_, _ = fmt.Fprintf(stdout, "benchmarking %s for %d iterations with input containing %d elements\n",
			kernel, inv.iterations, inv.n*inv.n)

		report, err := bench.Run(ctx, inv.config(kernel))
		for _, seconds := range report.Seconds {
			_, _ = fmt.Fprintf(stdout, "%.7g\n", seconds)
		}
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", kernel, err)
			code = 1
			if ctx.Err() != nil {
				return code
			}
			continue
		}

		s := report.Stats
		_, _ = fmt.Fprintf(stdout, "%s: %d calls, mean %.7g s, min %.7g s, max %.7g s, stddev %.3g s\n",
			kernel, s.Count, s.Mean, s.Min, s.Max, s.StdDev)
	}
	return code
}

func runTest(ctx context.Context, inv invocation, stdout, stderr io.Writer) int {
	code := 0
	for _, kernel := range inv.kernels {
		_, _ = fmt.Fprintf(stdout, "testing %s for %d iterations with input containing %d elements\n",
			kernel, inv.iterations, inv.n*inv.n)

		cfg := inv.config(kernel)
		cfg.OnIteration = func(i int, _ time.Duration, m *tropical.Mismatch) {
			if m == nil {
				_, _ = fmt.Fprint(stdout, ".")
				return
			}
			_, _ = fmt.Fprintf(stderr, "\nERROR: %s iteration %d: %v\n", kernel, i, m)
		}

		report, err := runVerify(ctx, cfg)
		_, _ = fmt.Fprintln(stdout)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", kernel, err)
			code = 1
			if ctx.Err() != nil {
				return code
			}
			continue
		}
		if !report.Passed() {
			code = 1
		}
	}
	return code
}

func printList(stdout, stderr io.Writer) int {
	def := tropical.DefaultKernel()

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Rank\tKernel\tSIMD\tDescription\n")
	_, _ = fmt.Fprintf(tw, "----\t------\t----\t-----------\n")
	for _, k := range tropical.Kernels() {
		name := k.Name
		if name == def {
			name += " *"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", k.Rank, name, k.SIMDLevel, k.Description)
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: failed to flush output: %v\n", err)
		return 1
	}
	return 0
}

func printInfo(stdout io.Writer, workers int) int {
	f := cpu.DetectFeatures()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	_, _ = fmt.Fprintf(tw, "Best SIMD level\t%s (%d float32 lanes)\n", f.BestLevel(), f.BestLevel().Float32Lanes())
	_, _ = fmt.Fprintf(tw, "SSE2/AVX/AVX2/AVX-512/FMA\t%t/%t/%t/%t/%t\n", f.HasSSE2, f.HasAVX, f.HasAVX2, f.HasAVX512, f.HasFMA)
	_, _ = fmt.Fprintf(tw, "NEON\t%t\n", f.HasNEON)
	_, _ = fmt.Fprintf(tw, "Cache line\t%d bytes\n", f.CacheLineSize)
	_, _ = fmt.Fprintf(tw, "Workers\t%d\n", workers)
	_, _ = fmt.Fprintf(tw, "Default kernel\t%s\n", tropical.DefaultKernel())
	if err := tw.Flush(); err != nil {
		return 1
	}
	return 0
}
