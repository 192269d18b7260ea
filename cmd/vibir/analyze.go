package main

import (
	"fmt"

	"github.com/Veraticus/vibir/internal/analysis"
	"github.com/Veraticus/vibir/internal/cli"
	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/export"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "analyze NMA",
		Short: "Summarize a merged .nma report",
		Long: `Summarize every mode of a vibAnalysis .nma report and start the interactive
filter/export loop. With --export the summary is written directly instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := common.CheckReadable(args[0], false); err != nil {
				return err
			}

			rows, err := summarizeReport(cfg, args[0])
			if err != nil {
				return err
			}

			if exportPath == "" {
				return cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context(), rows)
			}

			path, err := export.Export(exportPath, rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Results successfully saved to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the summary to FILE (.txt, .xlsx or .mc) without prompting")
	cmd.Flags().Int("top", analysis.DefaultTopN, "number of top contributions listed per mode")

	return cmd
}
