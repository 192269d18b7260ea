// Package config provides configuration loading and validation for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VIBIR_MERGE_TOLERANCE.
const EnvPrefix = "VIBIR"

// Config is the full application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	VibAnalysis VibAnalysisConfig `mapstructure:"vibanalysis"`
	Merge       MergeConfig       `mapstructure:"merge"`
	Analysis    AnalysisConfig    `mapstructure:"analysis"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// VibAnalysisConfig locates the external analyzer.
type VibAnalysisConfig struct {
	Interpreter string   `mapstructure:"interpreter" validate:"required"`
	Script      string   `mapstructure:"script"`
	Flags       []string `mapstructure:"flags"`
}

// MergeConfig controls how intensities are injected into the report.
type MergeConfig struct {
	BackupSuffix string  `mapstructure:"backup_suffix" validate:"required"`
	Tolerance    float64 `mapstructure:"tolerance" validate:"gt=0"`
	Backup       bool    `mapstructure:"backup"`
}

// AnalysisConfig controls the per-mode summary.
type AnalysisConfig struct {
	TopN                 int  `mapstructure:"top_n" validate:"min=1"`
	FoldTypeCase         bool `mapstructure:"fold_type_case"`
	RequireContributions bool `mapstructure:"require_contributions"`
}

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("vibanalysis.interpreter", "python3")
	v.SetDefault("vibanalysis.script", "")
	v.SetDefault("vibanalysis.flags", []string{"--vmard", "--mwd", "--autosel"})
	v.SetDefault("merge.tolerance", 0.05)
	v.SetDefault("merge.backup", true)
	v.SetDefault("merge.backup_suffix", ".orig")
	v.SetDefault("analysis.top_n", 2)
	v.SetDefault("analysis.fold_type_case", false)
	v.SetDefault("analysis.require_contributions", false)
}

// Init wires defaults, environment overrides and the config file into v. When
// cfgFile is empty the file is searched in $HOME/.config/vibir and the working
// directory; a missing file is not an error. A .env file in the working
// directory is loaded first so its values act as environment overrides.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "vibir"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.VibAnalysis.Script = ExpandPath(cfg.VibAnalysis.Script)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	return nil
}
