package main

import (
	"fmt"

	"github.com/Veraticus/vibir/internal/cli"
	"github.com/Veraticus/vibir/internal/orca"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the IR spectrum of an ORCA output file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spectrum, err := orca.NewParser().ParseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("IR spectrum (%d modes)", spectrum.Len())))
			fmt.Fprintln(out, cli.RenderSpectrum(spectrum))
			return nil
		},
	}
}
