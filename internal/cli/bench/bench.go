package bench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/animtrack/internal/bench"
)

var Command = &cobra.Command{
	Use:   "bench",
	Short: "Measure cursor hits and searches for a lookup pattern",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pattern, err := bench.ParsePattern(opts.Pattern)
		if err != nil {
			return err
		}

		fmt.Printf("[*] Running %s lookups: %d keyframes, %d queries\n", pattern, opts.Keyframes, opts.Queries)

		res, err := bench.Run(bench.Options{
			Keyframes: opts.Keyframes,
			Queries:   opts.Queries,
			Pattern:   pattern,
			Spacing:   opts.Spacing,
			Seed:      opts.Seed,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), res.String())
		return nil
	},
}
