package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sha2stream/internal/selftest"
)

func (r *RootCommand) newSelftestCommand() *cobra.Command {
	var (
		rounds int
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the engine against known vectors and an independent implementation",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			res, err := selftest.Run(seed, rounds)
			if err != nil {
				return fmt.Errorf("selftest failed: %w", err)
			}
			if _, err := fmt.Fprintf(r.out, "vectors: %d ok\nrandom:  %d ok (seed %d)\n", res.Vectors, res.Random, seed); err != nil {
				return fmt.Errorf("write selftest output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 200, "number of random messages to cross-check")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
