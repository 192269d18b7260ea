package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/vibir/internal/analysis"
	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/config"
	"github.com/Veraticus/vibir/internal/nma"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig decodes the global configuration and applies the command's flag
// overrides. Only flags the user actually set take precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("top") {
		cfg.Analysis.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("tolerance") {
		cfg.Merge.Tolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Changed("no-backup") {
		noBackup, _ := flags.GetBool("no-backup")
		cfg.Merge.Backup = !noBackup
	}
	if flags.Changed("va-script") {
		script, _ := flags.GetString("va-script")
		cfg.VibAnalysis.Script = config.ExpandPath(script)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newMerger(cfg *config.Config) *nma.Merger {
	return &nma.Merger{
		Tolerance:    cfg.Merge.Tolerance,
		Backup:       cfg.Merge.Backup,
		BackupSuffix: cfg.Merge.BackupSuffix,
	}
}

func newAggregator(cfg *config.Config) *analysis.Aggregator {
	agg := analysis.NewAggregator(cfg.Analysis.TopN)
	agg.FoldCase = cfg.Analysis.FoldTypeCase
	return agg
}

// findInput returns the first regular file in dir (in name order) whose
// extension is one of exts.
func findInput(dir string, exts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range exts {
			if ext == want {
				return filepath.Join(dir, entry.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("%w: no %s file in %s", common.ErrNotFound, strings.Join(exts, " or "), dir)
}
