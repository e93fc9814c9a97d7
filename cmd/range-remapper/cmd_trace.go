package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTraceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trace FILE SEED",
		Short: "Print a seed's value after every stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[1], err)
			}

			_, p, err := opts.load(args[0])
			if err != nil {
				return err
			}

			values := p.Trace(seed)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "seed %d\n", values[0])

			for i, s := range p.Stages() {
				name := s.Name()
				if name == "" {
					name = "stage " + strconv.Itoa(i+1)
				}

				fmt.Fprintf(out, "%s %d\n", name, values[i+1])
			}

			return nil
		},
	}
}
