package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/vibir/internal/analysis"
	"github.com/Veraticus/vibir/internal/cli"
	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/config"
	"github.com/Veraticus/vibir/internal/model"
	"github.com/Veraticus/vibir/internal/nma"
	"github.com/Veraticus/vibir/internal/orca"
	"github.com/Veraticus/vibir/internal/vibanalysis"
	"github.com/spf13/cobra"
)

const pipelineSteps = 5

type runOptions struct {
	outFile  string
	hessFile string
	dir      string
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Long: `Extract the IR spectrum from an ORCA output file, run vibAnalysis on the
Hessian, merge the intensities into its .nma report, summarize every mode and
start the interactive filter/export loop.

Examples:
  # Explicit inputs
  vibir run --out mol.out --hess mol.hess --va-script ~/vibAnalysis/va.py

  # Discover mol.out and mol.hess in a calculation directory
  vibir run --dir ./calc --va-script ~/vibAnalysis/va.py`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.outFile, "out", "", "ORCA output file with the IR SPECTRUM section")
	cmd.Flags().StringVar(&opts.hessFile, "hess", "", "ORCA Hessian file to analyze")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory to search for the .out/.orca and .hess files")
	cmd.Flags().String("va-script", "", "path to vibAnalysis va.py (overrides vibanalysis.script)")
	cmd.Flags().Int("top", analysis.DefaultTopN, "number of top contributions listed per mode")
	cmd.Flags().Float64("tolerance", nma.DefaultTolerance, "frequency matching tolerance in cm-1")
	cmd.Flags().Bool("no-backup", false, "do not keep a backup of the original .nma report")

	return cmd
}

func (o *runOptions) resolve() error {
	if o.dir != "" {
		if err := common.CheckReadable(o.dir, true); err != nil {
			return err
		}
		var err error
		if o.outFile == "" {
			if o.outFile, err = findInput(o.dir, ".out", ".orca"); err != nil {
				return err
			}
		}
		if o.hessFile == "" {
			if o.hessFile, err = findInput(o.dir, ".hess"); err != nil {
				return err
			}
		}
	}

	if o.outFile == "" || o.hessFile == "" {
		return common.NewUserError("both --out and --hess are required unless --dir is given", common.ErrNotFound)
	}
	if err := common.CheckReadable(o.outFile, false); err != nil {
		return err
	}
	return common.CheckReadable(o.hessFile, false)
}

func runPipeline(cmd *cobra.Command, opts runOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := opts.resolve(); err != nil {
		return err
	}

	slog.Info("Starting analysis", "out", opts.outFile, "hess", opts.hessFile)

	rows, err := analyzeInputs(cmd.Context(), cmd, cfg, opts)
	if err != nil {
		return err
	}

	return cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context(), rows)
}

func analyzeInputs(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts runOptions) ([]model.ResultRow, error) {
	tracker := cli.NewStepTracker(cmd.ErrOrStderr(), pipelineSteps)
	defer tracker.Finish()

	spectrum, err := orca.NewParser().ParseFile(opts.outFile)
	if err != nil {
		return nil, err
	}
	common.LogDebug("Extracted IR spectrum", common.Fields{"modes": spectrum.Len()})
	tracker.Advance("Extracted IR spectrum")

	runner, err := vibanalysis.NewRunner(vibanalysis.Config{
		Interpreter: cfg.VibAnalysis.Interpreter,
		ScriptPath:  cfg.VibAnalysis.Script,
		Flags:       cfg.VibAnalysis.Flags,
	})
	if err != nil {
		return nil, common.NewUserError("vibAnalysis is not available; set --va-script or vibanalysis.script", err)
	}
	result, err := runner.Run(ctx, opts.hessFile)
	if err != nil {
		return nil, err
	}
	common.LogDebug("vibAnalysis finished", common.Fields{"stdout": result.Stdout, "stderr": result.Stderr})
	tracker.Advance("Ran vibAnalysis")

	report, err := vibanalysis.LocateReport(opts.hessFile)
	if err != nil {
		return nil, err
	}
	tracker.Advance("Located report")

	stats, err := newMerger(cfg).MergeFile(report, spectrum)
	if err != nil {
		return nil, err
	}
	common.LogInfo("Merged IR intensities", common.Fields{
		"report":    report,
		"replaced":  stats.Replaced,
		"unmatched": len(stats.Unmatched),
	})
	tracker.Advance("Merged IR intensities")

	rows, err := summarizeReport(cfg, report)
	if err != nil {
		return nil, err
	}
	tracker.Advance("Summarized modes")

	return rows, nil
}

// summarizeReport parses a normal-mode report and aggregates it into rows.
func summarizeReport(cfg *config.Config, report string) ([]model.ResultRow, error) {
	modes, err := nma.ParseFile(report)
	if err != nil {
		return nil, err
	}
	if cfg.Analysis.RequireContributions {
		if err := nma.RequireContributions(modes); err != nil {
			return nil, fmt.Errorf("%s: %w", report, err)
		}
	}
	return newAggregator(cfg).Summarize(modes), nil
}
