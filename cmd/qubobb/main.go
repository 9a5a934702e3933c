// Command qubobb is a thin CLI wrapper around the qubobb solver
// library: it parses a line-oriented sparse QUBO file, runs
// branch-and-bound, and prints the resulting assignment and objective.
// Problem I/O and the CLI are external collaborators, not part of the
// core search the library implements.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjhbw/qubobb"
	"github.com/jjhbw/qubobb/internal/ioformat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		timeout  time.Duration
		seed     uint64
		strategy string
		verbose  bool
		threads  int
	)

	cmd := &cobra.Command{
		Use:   "qubobb [problem-file]",
		Short: "Branch-and-bound solver for QUBO problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			problem, err := ioformat.Parse(bufio.NewReader(f))
			if err != nil {
				return fmt.Errorf("parsing problem file: %w", err)
			}

			result, err := qubobb.SolveBranchBound(qubobb.SolveBranchBoundRequest{
				Problem:        problem,
				Timeout:        timeout,
				Seed:           &seed,
				BranchStrategy: strategy,
				Threads:        threads,
				Verbose:        verbose,
			})
			if err != nil {
				return err
			}

			fmt.Printf("objective: %v\n", result.Objective)
			fmt.Printf("x: %v\n", result.X)
			fmt.Printf("elapsed: %.3fs\n", result.ElapsedSeconds)
			fmt.Printf("nodes visited: %d, processed: %d\n", result.NodesVisited, result.NodesProcessed)
			if !result.Stats.ProvenOptimal {
				fmt.Println("warning: result is not proven optimal (timeout or subproblem failure)")
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "wall-clock time budget")
	cmd.Flags().Uint64Var(&seed, "seed", qubobb.DefaultSeed, "PRNG seed for the Random branch strategy")
	cmd.Flags().StringVar(&strategy, "branch-strategy", "FirstNotFixed", "FirstNotFixed|MostViolated|Random|WorstApproximation")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable structured progress logging")
	cmd.Flags().IntVar(&threads, "threads", 1, "advisory worker count (core search is single-threaded)")

	return cmd
}
