// Command analysis measures saltbloom filters against a text corpus.
//
//	analysis [flags] <corpus>                          time lookups across filter sizes
//	analysis [flags] <corpus> <capacity> <probability> build a filter from the corpus and report its error rates
//
// Flags must precede the corpus so that negative numbers after it are read
// as arguments.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	golog "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/jcalabro/saltbloom/calibrate"
)

var log = golog.Logger("analysis")

var errParse = errors.New("analysis: malformed argument")

type options struct {
	logLevel string
	sizes    []uint
	fpRate   float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	defaultSizes := make([]uint, len(calibrate.DefaultSweepSizes))
	for i, size := range calibrate.DefaultSweepSizes {
		defaultSizes[i] = uint(size)
	}

	cmd := &cobra.Command{
		Use:   "analysis [flags] <corpus> [<capacity> <false-positive-probability>]",
		Short: "analysis measures bloom filter error rates and lookup times.",
		Long: `With one argument, analysis times 1000 lookups against filters of increasing
capacity and prints "<capacity> <elapsed>" for each.

With three arguments, analysis builds a filter for <capacity> items at the given
false positive probability from every line of <corpus>, then reports how many
corpus lines and synthetic absent strings the filter classifies correctly.

Flags must come before <corpus>.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected 1 or 3 arguments, got %d", len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				return nil
			}
			return golog.SetLogLevel("*", opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past argument validation, failures are not usage mistakes.
			cmd.SilenceUsage = true

			if len(args) == 1 {
				return runSweep(cmd, opts)
			}
			return runEvaluate(cmd, args[0], args[1], args[2])
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	cmd.Flags().UintSliceVar(&opts.sizes, "sizes", defaultSizes, "filter capacities timed in sweep mode")
	cmd.Flags().Float64Var(&opts.fpRate, "fp-rate", calibrate.DefaultSweepFalsePositiveRate, "false positive probability of sweep filters")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runSweep(cmd *cobra.Command, opts *options) error {
	sizes := make([]uint64, len(opts.sizes))
	for i, size := range opts.sizes {
		sizes[i] = uint64(size)
	}

	log.Debugf("sweeping %d sizes at false positive probability %v", len(sizes), opts.fpRate)
	_, err := calibrate.Sweep(cmd.OutOrStdout(), sizes, opts.fpRate)
	return err
}

func runEvaluate(cmd *cobra.Command, path, capacityArg, fpRateArg string) error {
	capacity, err := strconv.ParseUint(capacityArg, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: filter capacity must be a positive integer: %w", errParse, err)
	}
	fpRate, err := strconv.ParseFloat(fpRateArg, 64)
	if err != nil {
		return fmt.Errorf("%w: false positive probability must be a number between 0 and 1: %w", errParse, err)
	}

	f, err := calibrate.BuildFile(path, capacity, fpRate)
	if err != nil {
		return err
	}
	log.Infof("built filter from %s: %d lines, m=%d, k=%d", path, f.Count(), f.Cap(), f.K())

	report, err := calibrate.CheckFile(path, f)
	if err != nil {
		return err
	}

	_, err = report.WriteTo(cmd.OutOrStdout())
	return err
}

// run executes the command with args and returns the process exit status.
// cobra prints the error to stderr; it is logged here at debug level with
// its full chain.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		log.Debugf("exiting with status 1: %+v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
