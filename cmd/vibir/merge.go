package main

import (
	"fmt"

	"github.com/Veraticus/vibir/internal/cli"
	"github.com/Veraticus/vibir/internal/nma"
	"github.com/Veraticus/vibir/internal/orca"
	"github.com/spf13/cobra"
)

func mergeCmd() *cobra.Command {
	var outFile, report string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge ORCA IR intensities into an existing .nma report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			spectrum, err := orca.NewParser().ParseFile(outFile)
			if err != nil {
				return err
			}
			stats, err := newMerger(cfg).MergeFile(report, spectrum)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Updated %d IR intensities in %s", stats.Replaced, report)))
			if n := len(stats.Unmatched); n > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d spectrum modes had no counterpart in the report", n)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "ORCA output file with the IR SPECTRUM section")
	cmd.Flags().StringVar(&report, "nma", "", "vibAnalysis .nma report to update")
	cmd.Flags().Float64("tolerance", nma.DefaultTolerance, "frequency matching tolerance in cm-1")
	cmd.Flags().Bool("no-backup", false, "do not keep a backup of the original .nma report")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("nma")

	return cmd
}
