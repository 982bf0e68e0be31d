// Command alpha studies the decomposition invariant alpha(n): the minimum
// number of finite sets whose power-set union has exactly n members.
//
// Usage:
//
//	alpha verify <file.adf>
//	alpha check [flags] <n> <k>
//	alpha sweep -k <k> -start <n> [flags]
//
// verify parses an ADF decomposition artifact and checks its claim exactly.
// check decides feasibility of alpha(n) <= k with no candidate in hand.
// sweep walks consecutive targets, recording every n with alpha(n) > k,
// with resumable progress.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/alphaset"
	"github.com/hupe1980/alphaset/adf"
	"github.com/hupe1980/alphaset/checkpoint"
	cps3 "github.com/hupe1980/alphaset/checkpoint/s3"
	"github.com/hupe1980/alphaset/exhaustive"
	"github.com/hupe1980/alphaset/lattice"
	"github.com/hupe1980/alphaset/sat"
	"github.com/hupe1980/alphaset/sweep"
)

const usage = `Usage:
  alpha verify <file.adf>
  alpha check [-backend exhaustive|sat] [-max-size N] [-v] <n> <k>
  alpha sweep -k <k> -start <n> [-end <n>] [-backend sat|exhaustive]
              [-state <dir>] [-s3-bucket <bucket> [-s3-prefix <prefix>]] [-v]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "verify":
		err = runVerify(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "sweep":
		err = runSweep(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("verify expects exactly one ADF file")
	}

	d, err := adf.ParseFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("Parsed: alpha(%d) <= %d decomposition\n", d.N, d.K)
	for i, set := range d.Sets {
		if set.IsEmpty() {
			fmt.Printf("  S%d = {}\n", i+1)
			continue
		}
		fmt.Printf("  S%d = {", i+1)
		for j, e := range set.ToArray() {
			if j > 0 {
				fmt.Print(", ")
			}
			fmt.Print(e)
		}
		fmt.Println("}")
	}

	fmt.Printf("\nVerifying |2^S1 u ... u 2^S%d| = %d...\n", d.K, d.N)
	ok, actual := d.Verify()
	if !ok {
		fmt.Printf("invalid decomposition: union size = %s != %d\n", actual, d.N)
		os.Exit(1)
	}
	fmt.Printf("valid decomposition: union size = %s\n", actual)
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	backend := fs.String("backend", "exhaustive", "feasibility backend: exhaustive or sat")
	maxSize := fs.Int("max-size", 0, "per-set size ceiling (0 = derived from n)")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("check expects <n> <k>")
	}

	n, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid n %q", fs.Arg(0))
	}
	k, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid k %q", fs.Arg(1))
	}

	logger := newLogger(*verbose)
	oracle, err := newOracle(*backend, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Checking alpha(%d) <= %d (binary of n: %b)\n", n, k, n)

	var opts []alphaset.CheckOption
	if *maxSize > 0 {
		opts = append(opts, alphaset.WithCeiling(*maxSize))
	}
	res, err := oracle.Check(ctx, n, k, opts...)
	if err != nil {
		return err
	}

	if !res.Feasible {
		fmt.Printf("\nalpha(%d) > %d: no decomposition with set sizes <= %d", n, k, res.Ceiling)
		if res.Candidates > 0 {
			fmt.Printf(" (exhausted %d candidates in %s)", res.Candidates, res.Elapsed.Round(time.Millisecond))
		}
		fmt.Println()
		os.Exit(1)
	}

	fmt.Printf("\nalpha(%d) <= %d (decided in %s)\n", n, k, res.Elapsed.Round(time.Millisecond))
	printWitness(k, res.Witness)
	return nil
}

func runSweep(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	k := fs.Int("k", 0, "number of sets")
	start := fs.Uint64("start", 1, "first target")
	end := fs.Uint64("end", 0, "last target (0 = unbounded)")
	backend := fs.String("backend", "sat", "feasibility backend: sat or exhaustive")
	stateDir := fs.String("state", ".", "directory for progress checkpoints")
	s3Bucket := fs.String("s3-bucket", "", "S3 bucket for progress checkpoints (overrides -state)")
	s3Prefix := fs.String("s3-prefix", "alphaset", "S3 key prefix")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)
	if *k < 1 {
		return fmt.Errorf("sweep requires -k >= 1")
	}

	logger := newLogger(*verbose)
	oracle, err := newOracle(*backend, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, *stateDir, *s3Bucket, *s3Prefix)
	if err != nil {
		return err
	}

	driver := sweep.New(oracle, store, sweep.WithLogger(logger))
	summary, err := driver.Run(ctx, *k, *start, *end)
	if err != nil && summary == nil {
		return err
	}
	if err != nil {
		fmt.Printf("\nInterrupted at n=%d; progress saved, rerun to resume.\n", summary.LastN)
	} else {
		fmt.Printf("\nCompleted sweep up to n=%d.\n", summary.LastN)
	}

	fmt.Printf("Checked %d targets in %s.\n", summary.Checked, summary.Elapsed.Round(time.Second))
	if len(summary.Found) > 0 {
		fmt.Printf("Found %d targets with alpha(n) > %d:\n", len(summary.Found), *k)
		for i, n := range summary.Found {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(summary.Found)-10)
				break
			}
			fmt.Printf("  n=%d (binary: %b)\n", n, n)
		}
	}
	return nil
}

func newLogger(verbose bool) *alphaset.Logger {
	level := slog.LevelInfo
	if !verbose {
		level = slog.LevelWarn
	}
	return alphaset.NewTextLogger(level)
}

func newOracle(backend string, logger *alphaset.Logger) (alphaset.Oracle, error) {
	switch backend {
	case "exhaustive":
		return exhaustive.New(exhaustive.WithLogger(logger)), nil
	case "sat":
		return sat.New(sat.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func newStore(ctx context.Context, dir, bucket, prefix string) (checkpoint.Store, error) {
	if bucket == "" {
		return checkpoint.NewLocalStore(dir)
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return cps3.NewStore(awss3.NewFromConfig(cfg), bucket, prefix)
}

// printWitness lists the witnessing intersection sizes grouped by arity,
// the shape a reader compares against pen-and-paper inclusion–exclusion.
func printWitness(k int, d lattice.DVector) {
	fmt.Println("Set sizes:")
	for i := 0; i < k; i++ {
		fmt.Printf("  |S%d| = %d\n", i+1, d.Size(lattice.Singleton(i)))
	}
	for arity := 2; arity <= k; arity++ {
		header := false
		for mask := 1; mask <= lattice.NumMasks(k); mask++ {
			if bits.OnesCount(uint(mask)) != arity {
				continue
			}
			if !header {
				fmt.Printf("%d-way intersections:\n", arity)
				header = true
			}
			fmt.Printf("  |%s| = %d\n", maskName(k, mask), d.Size(mask))
		}
	}
}

func maskName(k, mask int) string {
	name := ""
	for i := 0; i < k; i++ {
		if mask&lattice.Singleton(i) != 0 {
			if name != "" {
				name += " n "
			}
			name += fmt.Sprintf("S%d", i+1)
		}
	}
	return name
}
