// Package main provides the CLI entrypoint for range-remapper.
//
// range-remapper evaluates a chain of integer remapping stages:
//   - Reads an almanac (text puzzle input or YAML)
//   - Validates every stage, rejecting overlapping source intervals
//   - Finds the minimum location for individual seeds or seed ranges
//   - Converts text almanacs to YAML
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"range-remapper/internal/almanac"
	"range-remapper/internal/pipeline"
	"range-remapper/internal/resolve"
	"range-remapper/internal/stage"
)

// options holds the persistent flags and the logger shared by subcommands.
type options struct {
	verbose            bool
	workers            int
	strictDestinations bool

	logger *zap.Logger
}

func (o *options) stageConfig() stage.Config {
	return stage.Config{StrictDestinations: o.strictDestinations}
}

// load reads the almanac at path and builds its pipeline.
func (o *options) load(path string) (*almanac.Almanac, *pipeline.Pipeline, error) {
	a, err := almanac.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	p, err := a.Pipeline(o.stageConfig())
	if err != nil {
		return nil, nil, err
	}

	o.logger.Debug("loaded almanac",
		zap.String("path", path),
		zap.Int("seeds", len(a.Seeds)),
		zap.Int("stages", p.Len()),
	)

	return a, p, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "range-remapper",
		Short: "Evaluate chained range-remapping stages",
		Long: `range-remapper reads an almanac of remapping stages and reports the
minimum location reachable from its seeds.

Files ending in .yaml or .yml are read as YAML; anything else is read as
the text format:

  seeds: 79 14 55 13

  seed-to-soil map:
  50 98 2
  52 50 48`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}

			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			var err error

			opts.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVarP(&opts.workers, "workers", "w", 1, "goroutines per stage in range mode")
	root.PersistentFlags().BoolVar(&opts.strictDestinations, "strict-destinations", false,
		"reject stages whose destination intervals overlap")

	root.AddCommand(
		newSolveCmd(opts, resolve.ModePoints, "points FILE", "Minimum location over individual seeds"),
		newSolveCmd(opts, resolve.ModeRanges, "ranges FILE", "Minimum location over (start, length) seed ranges"),
		newSolveCmd(opts, resolve.ModeReverse, "reverse FILE", "Minimum location found by inverting the pipeline"),
		newModeSolveCmd(opts),
		newCheckCmd(opts),
		newConvertCmd(opts),
		newTraceCmd(opts),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
