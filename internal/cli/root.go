package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwatt/piwatt/internal/errors"
)

// Global flags shared by all subcommands.
var (
	configFlag string
)

// rootCmd is the base command for piwatt.
var rootCmd = &cobra.Command{
	Use:   "piwatt",
	Short: "Raspberry Pi power consumption monitor",
	Long: `piwatt reads per-rail power telemetry from the Raspberry Pi PMIC,
shows a live terminal dashboard while it samples, and writes an annotated
PNG chart of the run when it exits.

Telemetry comes from 'vcgencmd pmic_read_adc', so piwatt needs to run on
the Pi itself (Raspberry Pi 5 or another board whose firmware exposes the
PMIC ADC readings).

Examples:
  piwatt watch
  piwatt watch --interval 2s --duration 5m
  piwatt snapshot --json`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
