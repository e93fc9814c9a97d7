package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"range-remapper/internal/almanac"
)

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert FILE OUT",
		Short: "Rewrite an almanac as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := almanac.LoadFile(args[0])
			if err != nil {
				return err
			}

			if err := almanac.WriteFile(a, args[1]); err != nil {
				return err
			}

			opts.logger.Info("converted almanac", zap.String("from", args[0]), zap.String("to", args[1]))

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])

			return err
		},
	}
}
