package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"range-remapper/internal/resolve"
)

func newSolveCmd(opts *options, mode resolve.Mode, use, short string) *cobra.Command {
	var showSeed bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, opts, mode, args[0], showSeed)
		},
	}

	cmd.Flags().BoolVar(&showSeed, "show-seed", false, "also print the seed that reaches the minimum")

	return cmd
}

// newModeSolveCmd selects the query with --mode instead of a subcommand.
func newModeSolveCmd(opts *options) *cobra.Command {
	var (
		showSeed bool
		modeName string
	)

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Minimum location using the query named by --mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolve.ParseMode(modeName)
			if err != nil {
				return err
			}

			return solve(cmd, opts, mode, args[0], showSeed)
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", resolve.DefaultConfig().Mode.String(),
		"query to run: points, ranges or reverse")
	cmd.Flags().BoolVar(&showSeed, "show-seed", false, "also print the seed that reaches the minimum")

	return cmd
}

func solve(cmd *cobra.Command, opts *options, mode resolve.Mode, path string, showSeed bool) error {
	a, p, err := opts.load(path)
	if err != nil {
		return err
	}

	cfg := resolve.DefaultConfig()
	cfg.Mode = mode
	cfg.Workers = opts.workers

	res, err := resolve.NewResolver(p, cfg, opts.logger).Resolve(cmd.Context(), a)
	if err != nil {
		return err
	}

	opts.logger.Info("resolved",
		zap.Stringer("mode", mode),
		zap.Uint64("location", res.Location),
		zap.Uint64("seed", res.Seed),
	)

	if showSeed {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d seed=%d\n", res.Location, res.Seed)
	} else {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Location)
	}

	return err
}
