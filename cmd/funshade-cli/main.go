// Command funshade-cli is a small CLI for exercising the funshade 2PC
// distance-then-threshold gate: run a dealer ceremony, replay the
// biometric-matching demo from the original test suite, or benchmark
// the protocol at a given scale.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	kInstances int
	lDim       int
	thetaFlag  int64
	widthFlag  int
	seedFlag   int64
	maxElFlag  int64
	outFile    string

	rootCmd = &cobra.Command{
		Use:   "funshade-cli",
		Short: "CLI for the funshade two-party distance-threshold protocol",
	}

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Run a dealer ceremony and write both parties' key bundles",
		RunE:  runSetup,
	}

	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run an end-to-end biometric match simulation (scenario S3)",
		RunE:  runDemo,
	}

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Benchmark dealer setup (online evaluation is not timed)",
		RunE:  runBench,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Replay a dealer ceremony from its published commitment and check the transcript",
		RunE:  runVerify,
	}
)

func init() {
	rootCmd.PersistentFlags().IntVar(&kInstances, "k", 16, "number of precomputed comparison instances")
	rootCmd.PersistentFlags().IntVar(&lDim, "l", 512, "vector dimension per comparison")
	rootCmd.PersistentFlags().Int64Var(&thetaFlag, "theta", 0, "fixed-point threshold")
	rootCmd.PersistentFlags().IntVar(&widthFlag, "width", 32, "ring width: 32 or 64")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 42, "PRNG seed for demo/bench data")
	rootCmd.PersistentFlags().Int64Var(&maxElFlag, "max-el", 1<<12, "declared bound on |x_i|, used for the overflow precondition check")

	setupCmd.Flags().StringVar(&outFile, "out", "funshade-ceremony.cbor", "output bundle path")
	verifyCmd.Flags().StringVar(&outFile, "out", "funshade-ceremony.cbor", "bundle path whose .commit companion file to replay")

	rootCmd.AddCommand(setupCmd, demoCmd, benchCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "funshade-cli:", err)
		os.Exit(1)
	}
}
