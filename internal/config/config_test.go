package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "python3", cfg.VibAnalysis.Interpreter)
	assert.Equal(t, []string{"--vmard", "--mwd", "--autosel"}, cfg.VibAnalysis.Flags)
	assert.InDelta(t, 0.05, cfg.Merge.Tolerance, 1e-12)
	assert.True(t, cfg.Merge.Backup)
	assert.Equal(t, ".orig", cfg.Merge.BackupSuffix)
	assert.Equal(t, 2, cfg.Analysis.TopN)
	assert.False(t, cfg.Analysis.FoldTypeCase)
}

func TestInit_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
vibanalysis:
  script: $VIBIR_TEST_HOME/vibAnalysis/va.py
merge:
  tolerance: 0.1
  backup: false
analysis:
  top_n: 3
`), 0600))
	t.Setenv("VIBIR_TEST_HOME", "/opt")
	t.Setenv("VIBIR_ANALYSIS_TOP_N", "4")
	t.Setenv("VIBIR_LOGGING_LEVEL", "debug")

	v := viper.New()
	require.NoError(t, Init(v, cfgFile))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/opt/vibAnalysis/va.py", cfg.VibAnalysis.Script)
	assert.InDelta(t, 0.1, cfg.Merge.Tolerance, 1e-12)
	assert.False(t, cfg.Merge.Backup)
	assert.Equal(t, 4, cfg.Analysis.TopN, "environment wins over the file")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate func(*viper.Viper)
		name   string
	}{
		{name: "zero tolerance", mutate: func(v *viper.Viper) { v.Set("merge.tolerance", 0) }},
		{name: "negative top n", mutate: func(v *viper.Viper) { v.Set("analysis.top_n", -1) }},
		{name: "unknown log level", mutate: func(v *viper.Viper) { v.Set("logging.level", "chatty") }},
		{name: "unknown log format", mutate: func(v *viper.Viper) { v.Set("logging.format", "xml") }},
		{name: "empty interpreter", mutate: func(v *viper.Viper) { v.Set("vibanalysis.interpreter", "") }},
		{name: "empty backup suffix", mutate: func(v *viper.Viper) { v.Set("merge.backup_suffix", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			tt.mutate(v)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}
