package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"range-remapper/internal/almanac"
)

var errInvalidAlmanac = errors.New("almanac has validation errors")

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate stages and report diagnostics",
		Long: `Validates every stage of the almanac and prints one line per diagnostic.

Errors (zero-length intervals, overflow, overlapping sources) make the
command fail. Overlapping destinations and names that do not chain are
reported as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := almanac.LoadFile(args[0])
			if err != nil {
				return err
			}

			diags := a.Validate(opts.stageConfig())
			out := cmd.OutOrStdout()

			for _, d := range diags.All() {
				fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
			}

			if diags.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", errInvalidAlmanac, len(diags.Errors))
			}

			_, err = fmt.Fprintf(out, "ok: %d stage(s), %d seed value(s)\n", len(a.Maps), len(a.Seeds))

			return err
		},
	}
}
