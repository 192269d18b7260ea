package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/vibir/internal/cli"
	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vibir",
		Short: "🧪 Vibrational mode analysis with ORCA IR intensities",
		Long: `vibir merges the IR intensities from an ORCA output file into the normal-mode
report of vibAnalysis, summarizes each mode by its internal-coordinate
contributions and lets you filter and export the result.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/vibir/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(runCmd())
	root.AddCommand(extractCmd())
	root.AddCommand(mergeCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stdout)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop() // Always cleanup

	os.Exit(exitCode(err, interrupts.WasInterrupted()))
}

// exitCode reports err and maps it to the process exit status. Cancelling or
// ending the input stream counts as quitting.
func exitCode(err error, interrupted bool) int {
	switch {
	case err == nil:
		return 0
	case interrupted || errors.Is(err, cli.ErrInputCancelled):
		// The interrupt handler already told the user.
		return 0
	case errors.Is(err, cli.ErrInputClosed):
		fmt.Fprintln(os.Stdout, cli.FormatInfo("Input ended. Exiting."))
		return 0
	default:
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		return 1
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format"), os.Stderr); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vibir version %s\n", version)
		},
	}
}
